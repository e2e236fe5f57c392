package domain

import "errors"

// Ошибки, возникающие при построении или декодировании доменных значений.
// Отличаются от taxonomy ошибок internal/scheduler/errors.go, которая
// касается работы планировщика, а не построения его сущностей.
var (
	// ErrUnknownActionType — UnmarshalAction встретил неизвестный тег типа.
	ErrUnknownActionType = errors.New("unknown action type")

	// ErrActionEncoding — Action не может быть закодирован (например, nil).
	ErrActionEncoding = errors.New("action encoding error")

	// ErrInvalidSchedule — нарушены инварианты Schedule.
	ErrInvalidSchedule = errors.New("invalid schedule")
)
