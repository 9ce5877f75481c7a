// Package sl содержит хелперы для структурированного логирования через slog.
package sl

import "log/slog"

// Err оборачивает ошибку в атрибут лога с ключом "error",
// чтобы ошибки во всех записях выглядели одинаково:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}
