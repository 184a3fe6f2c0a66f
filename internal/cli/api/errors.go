package api

import "errors"

// Ошибки шлюза. Сервисы различают только эти категории;
// детали транспорта заворачиваются внутрь.
var (
	// ErrNetwork — сервер недоступен или запрос не дошёл.
	ErrNetwork = errors.New("server unreachable")

	// ErrNotAuthenticated — сессия отсутствует или токен отклонён (401).
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound — ресурса нет на сервере (404).
	ErrNotFound = errors.New("not found on server")

	// ErrConflict — запись уже существует (409).
	ErrConflict = errors.New("already exists on server")
)
