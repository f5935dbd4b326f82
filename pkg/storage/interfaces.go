package storage

import "io"

// ObjectStorage is the object store surface the application relies on.
type ObjectStorage interface {
	Upload(key string, src io.Reader) error
	Delete(key string) error
	PublicURL(key string) string
}
