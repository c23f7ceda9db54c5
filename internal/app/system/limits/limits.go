// internal/app/system/limits/limits.go
package limits

// Request body size limits.
const (
	// MaxJSONBody bounds validate, create and replace payloads.
	MaxJSONBody = 1 << 20 // 1 MB

	// MaxImportUpload bounds a people CSV import, raw or multipart.
	MaxImportUpload = 5 << 20 // 5 MB
)
