package model

// History — кольцевой буфер последних ставок фиксированной ёмкости.
type History struct {
	buf   []int64
	start int
	size  int
}

// NewHistory создаёт буфер ёмкостью capacity и заполняет его initial.
// Если initial длиннее capacity, ёмкость расширяется до len(initial).
func NewHistory(capacity int, initial ...int64) History {
	if capacity < len(initial) {
		capacity = len(initial)
	}
	h := History{buf: make([]int64, capacity)}
	for _, v := range initial {
		h.Push(v)
	}
	return h
}

// Push добавляет значение в конец, вытесняя самое старое при заполненном буфере.
func (h *History) Push(v int64) {
	if len(h.buf) == 0 {
		return
	}
	if h.size < len(h.buf) {
		h.buf[(h.start+h.size)%len(h.buf)] = v
		h.size++
		return
	}
	h.buf[h.start] = v
	h.start = (h.start + 1) % len(h.buf)
}

// Values возвращает копию значений от самого старого к самому новому.
func (h History) Values() []int64 {
	out := make([]int64, 0, h.size)
	for i := 0; i < h.size; i++ {
		out = append(out, h.buf[(h.start+i)%len(h.buf)])
	}
	return out
}

// Len возвращает число сохранённых значений.
func (h History) Len() int { return h.size }

// Cap возвращает ёмкость буфера.
func (h History) Cap() int { return len(h.buf) }
