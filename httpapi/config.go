package httpapi

// Config defines the transfer server settings.
type Config struct {
	Addr string
	// MaxUploadBytes caps an uploaded document. Zero means 4 MiB.
	MaxUploadBytes int64
}

const defaultMaxUpload = 4 << 20
