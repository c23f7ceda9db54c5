// internal/app/system/csvutil/limits.go
package csvutil

// MaxRows caps the data rows accepted from one import file.
const MaxRows = 20000
