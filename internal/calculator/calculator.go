package calculator

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Имена операций, о которых сообщается наблюдателю
const (
	OpAdd      = "add"
	OpSubtract = "subtract"
	OpDivide   = "divide"
	OpSqrt     = "sqrt"
)

// Пределы десятичных операндов Divide
const (
	MaxDecimalScale = 28
	MaxDecimalBits  = 96
)

// DefaultDelay имитация задержки асинхронного вычисления
const DefaultDelay = 50 * time.Millisecond

// Service контракт калькулятора
type Service interface {
	Add(a, b int32) (int32, error)
	Subtract(a, b int32) (int32, error)
	Divide(a, b decimal.Decimal) (decimal.Decimal, error)
	CalculateAsync(ctx context.Context, value float64) (float64, error)
}

// Observer получает имя операции и её ошибку (nil при успехе)
type Observer func(op string, err error)

// Option настройка калькулятора
type Option func(*Calculator)

// WithDelay задаёт задержку CalculateAsync
func WithDelay(d time.Duration) Option {
	return func(c *Calculator) {
		c.delay = d
	}
}

// WithObserver подключает наблюдателя за операциями
func WithObserver(fn Observer) Option {
	return func(c *Calculator) {
		c.observe = fn
	}
}

// Calculator реализация Service без состояния между вызовами
type Calculator struct {
	delay   time.Duration
	observe Observer
}

var _ Service = (*Calculator)(nil)

// New создаёт калькулятор
func New(opts ...Option) *Calculator {
	c := &Calculator{delay: DefaultDelay}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add сложение с проверкой переполнения
func (c *Calculator) Add(a, b int32) (int32, error) {
	sum := int64(a) + int64(b)
	if sum > math.MaxInt32 || sum < math.MinInt32 {
		return 0, c.done(OpAdd, NewOverflowError("addition overflow: %d + %d", a, b))
	}
	return int32(sum), c.done(OpAdd, nil)
}

// Subtract вычитание с проверкой переполнения
func (c *Calculator) Subtract(a, b int32) (int32, error) {
	diff := int64(a) - int64(b)
	if diff > math.MaxInt32 || diff < math.MinInt32 {
		return 0, c.done(OpSubtract, NewOverflowError("subtraction overflow: %d - %d", a, b))
	}
	return int32(diff), c.done(OpSubtract, nil)
}

// Divide деление в десятичной арифметике. Операнды ограничены диапазоном
// 96-битной мантиссы и масштабом до 28 знаков
func (c *Calculator) Divide(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, c.done(OpDivide, NewInvalidArgumentError("b", "divisor must not be zero"))
	}
	if err := checkDecimal("a", a); err != nil {
		return decimal.Zero, c.done(OpDivide, err)
	}
	if err := checkDecimal("b", b); err != nil {
		return decimal.Zero, c.done(OpDivide, err)
	}
	return a.Div(b), c.done(OpDivide, nil)
}

// checkDecimal не пускает в Div значения, на которых decimal паникует или строит огромные big.Int
func checkDecimal(param string, d decimal.Decimal) error {
	exp := d.Exponent()
	if exp < -MaxDecimalScale || exp > MaxDecimalScale || d.Coefficient().BitLen() > MaxDecimalBits {
		return NewInvalidArgumentError(param, "value is outside the supported decimal range")
	}
	return nil
}

// CalculateAsync квадратный корень после имитации задержки.
// Ожидание прерывается отменой ctx
func (c *Calculator) CalculateAsync(ctx context.Context, value float64) (float64, error) {
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return 0, c.done(OpSqrt, ctx.Err())
		case <-timer.C:
		}
	}

	switch {
	case value < 0:
		return 0, c.done(OpSqrt, NewInvalidArgumentError("value", "value must not be negative"))
	case value == 0:
		return 0, c.done(OpSqrt, nil)
	default:
		return math.Sqrt(value), c.done(OpSqrt, nil)
	}
}

func (c *Calculator) done(op string, err error) error {
	if c.observe != nil {
		c.observe(op, err)
	}
	return err
}
