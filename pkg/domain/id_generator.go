package domain

// IDGenerator produz identificadores únicos para entidades e eventos.
type IDGenerator[T any] func() T
