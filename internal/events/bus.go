// Package events реализует синхронную шину уведомлений витрины аукциона.
package events

import "regexp"

// Handler получает полезную нагрузку события.
type Handler func(payload any)

// WildcardHandler получает имя события и его полезную нагрузку.
type WildcardHandler func(name string, payload any)

// Matcher решает, подходит ли подписка под имя события.
type Matcher interface {
	Match(name string) bool
}

// Name — точное совпадение имени события.
type Name string

// Match сравнивает имя события целиком.
func (n Name) Match(name string) bool {
	return string(n) == name
}

type patternMatcher struct {
	re *regexp.Regexp
}

func (p patternMatcher) Match(name string) bool {
	return p.re.MatchString(name)
}

// Pattern компилирует регулярное выражение для подписки на семейство событий.
func Pattern(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return patternMatcher{re: re}, nil
}

// MustPattern аналогичен Pattern, но паникует на некорректном выражении.
func MustPattern(expr string) Matcher {
	return patternMatcher{re: regexp.MustCompile(expr)}
}

type anyName struct{}

func (anyName) Match(string) bool { return true }

// Subscription идентифицирует одну регистрацию обработчика.
type Subscription uint64

type subscriber struct {
	id      Subscription
	matcher Matcher
	handler WildcardHandler
}

// Bus — синхронный брокер событий. Emit возвращается только после того,
// как отработали все подходящие обработчики.
//
// Шина не защищена от повторного входа: обработчик, публикующий то же
// событие без условия остановки, зациклится.
type Bus struct {
	subs   []subscriber
	nextID Subscription
}

// NewBus создаёт пустую шину.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe регистрирует обработчик для событий, подходящих под matcher.
func (b *Bus) Subscribe(m Matcher, h Handler) Subscription {
	return b.add(m, func(_ string, payload any) { h(payload) })
}

// SubscribeAll регистрирует обработчик, вызываемый для каждого события.
func (b *Bus) SubscribeAll(h WildcardHandler) Subscription {
	return b.add(anyName{}, h)
}

func (b *Bus) add(m Matcher, h WildcardHandler) Subscription {
	b.nextID++
	b.subs = append(b.subs, subscriber{id: b.nextID, matcher: m, handler: h})
	return b.nextID
}

// Unsubscribe удаляет регистрацию. Неизвестный идентификатор игнорируется.
func (b *Bus) Unsubscribe(id Subscription) {
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Emit синхронно вызывает в порядке регистрации все обработчики,
// подписанные на name. Подписки, добавленные во время Emit, это событие не получат.
func (b *Bus) Emit(name string, payload any) {
	snapshot := b.subs
	for _, s := range snapshot {
		if s.matcher.Match(name) {
			s.handler(name, payload)
		}
	}
}

// On подписывает типизированный обработчик на событие с точным именем.
// Нагрузка другого типа пропускается.
func On[T any](b *Bus, name string, h func(T)) Subscription {
	return b.Subscribe(Name(name), func(payload any) {
		if v, ok := payload.(T); ok {
			h(v)
		}
	})
}
