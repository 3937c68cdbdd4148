package constants

// Common error messages
const (
	ErrInvalidJSON         = "invalid json atau field tidak lengkap"
	ErrDB                  = "DB error"
	ErrMethodNotAllowed    = "Method Not Allowed"
	ErrMultipartForm       = "Gagal membaca form upload"
	ErrFileRequired        = "Pilih file Excel terlebih dahulu"
	ErrTahunRequired       = "tahun wajib diisi dan harus berupa angka"
	ErrUnsupportedFileType = "tipe file tidak didukung (gunakan .xlsx, .xls, atau .csv)"
)

// Content types
const (
	ContentTypeJSON   = "application/json"
	HeaderContentType = "Content-Type"
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
)
