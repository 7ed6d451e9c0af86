//go:build !gts

package native

import (
	"errors"

	"github.com/iwtcode/googolAdapter/gts/model"
)

// ErrUnavailable - бинарник собран без тега gts, библиотека контроллера не подключена.
var ErrUnavailable = errors.New("native GTS backend is not compiled in, rebuild with -tags gts")

// New без тега gts всегда возвращает ErrUnavailable.
func New() (model.CommandPort, error) {
	return nil, ErrUnavailable
}
