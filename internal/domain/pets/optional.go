package pets

// Optional distingue "campo enviado" de "campo omitido".
// Un Optional[int] con valor 0 sigue contando como presente.
type Optional[T any] struct {
	value T
	set   bool
}

// Some construye un Optional presente.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None construye un Optional ausente (equivale al zero value).
func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o Optional[T]) IsSet() bool {
	return o.set
}

// ValueOr devuelve el valor si está presente, o def en caso contrario.
func (o Optional[T]) ValueOr(def T) T {
	if !o.set {
		return def
	}
	return o.value
}
