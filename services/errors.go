package services

import (
	"errors"
	"fmt"
)

// ErrUserNotFound сигнализирует отсутствие пользователя явно,
// вместо пустой структуры с нулевыми полями
var ErrUserNotFound = errors.New("user not found")

// ErrInstrumentNotFound сигнализирует отсутствие инструмента
var ErrInstrumentNotFound = errors.New("instrument not found")

// StorageError - восстановимая ошибка хранилища. Читающие операции ленты
// не пробрасывают ее вызывающему, а возвращают пустой результат
// и фиксируют ошибку в логе и метриках
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
