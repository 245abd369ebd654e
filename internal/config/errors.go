package config

import "errors"

var (
	// ErrLoad возвращается, если файл конфигурации не удалось прочитать
	ErrLoad = errors.New("config: failed to load file")

	// ErrEnv возвращается при некорректных переменных окружения
	ErrEnv = errors.New("config: invalid environment override")

	// ErrInvalid возвращается при недопустимых значениях конфигурации
	ErrInvalid = errors.New("config: invalid value")
)
