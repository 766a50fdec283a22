package usecase

import "errors"

var (
	// ErrNotAuthenticated — мутация, требующая владельца, вызвана без активного пользователя.
	// Проверяется до любого обращения к шлюзу данных.
	ErrNotAuthenticated = errors.New("user not authenticated")

	// ErrValidation — обязательное поле не заполнено; до шлюза запрос не доходит
	ErrValidation = errors.New("validation failed")

	// ErrNotFound — запись не найдена в хранилище
	ErrNotFound = errors.New("not found")
)
