package catalog

import "github.com/pkg/errors"

var (
	// ErrStoreUnavailable: veri deposuna ulaşılamadı. Çağıran daha sonra
	// tekrar deneyebilir; motor kendi içinde retry yapmaz, o iş sürücünün.
	ErrStoreUnavailable = errors.New("veri deposuna ulaşılamadı")

	// ErrCancelled: istek yükleme aşamasında iptal edildi. Kısmi sonuç
	// dönülmez.
	ErrCancelled = errors.New("istek iptal edildi")
)

// InvalidParameterError: çağıranın gönderdiği filtre değeri kuralları ihlal
// ediyor. Sessizce düzeltilmez, açıklayıcı mesajla reddedilir; çağıran
// isteğini düzeltmeden tekrar dememeli.
type InvalidParameterError struct {
	Param   string
	Message string
}

func (e *InvalidParameterError) Error() string {
	return e.Param + ": " + e.Message
}

func invalidParam(param, msg string) error {
	return &InvalidParameterError{Param: param, Message: msg}
}
