package httperr

import "errors"

// BusinessError é um desfecho determinístico de regra de negócio
// (horário ocupado, transição inválida, janela fechada). O código é
// estável e vira o error_code da resposta HTTP.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// CodeOf extrai o código de negócio de um erro, se houver.
func CodeOf(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

func IsBusiness(err error, code string) bool {
	got, ok := CodeOf(err)
	return ok && got == code
}
