package usecase

import "time"

// nowFunc permite inyectar un reloj determinista en tests.
type nowFunc func() time.Time

func defaultNow() time.Time { return time.Now() }
