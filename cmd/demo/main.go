package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/GGmuzem/showcase-api/internal/calculator"
	"github.com/GGmuzem/showcase-api/internal/database"
	"github.com/GGmuzem/showcase-api/internal/logger"
	"github.com/GGmuzem/showcase-api/internal/stringx"
	"github.com/GGmuzem/showcase-api/pkg/models"
	"github.com/shopspring/decimal"
)

func main() {
	os.Exit(demo())
}

func demo() int {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	if err := run(context.Background(), log); err != nil {
		log.Error("demo failed", "error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, log *logger.Logger) error {
	fmt.Println("=== Showcase demo ===")

	// 1. Значение с проверкой при создании
	person, err := models.NewPerson("Zhang San", 30)
	if err != nil {
		return err
	}
	fmt.Printf("Person: %s, group: %s, adult: %v\n", person.DisplayName(), person.AgeGroup(), person.IsAdult())

	// 2. Необязательный обработчик вызывается только если задан
	var onMessage func(string)
	notify := func(msg string) {
		if onMessage != nil {
			onMessage(msg)
		}
	}
	notify("nobody is listening yet")
	onMessage = func(msg string) { fmt.Printf("Message: %s\n", msg) }
	notify("optional callback invoked")

	// 3. Срезы
	numbers := []int{1, 2, 3, 4, 5}
	names := []string{"Alice", "Bob", "Charlie"}
	fmt.Printf("Numbers: %v, names: %s\n", numbers, strings.Join(names, ", "))
	fmt.Printf("Slice [1:4]: %v\n", numbers[1:4])

	minValue, maxValue := minMax(numbers)
	fmt.Printf("Min: %d, max: %d\n", minValue, maxValue)
	fmt.Printf("SafeSubstring: %q\n", stringx.SafeSubstring("calculator", 0, 4))

	// 4. Калькулятор
	calc := calculator.New(calculator.WithObserver(func(op string, err error) {
		log.Debug("calculation", "operation", op, "error", err)
	}))
	sum, err := calc.Add(10, 20)
	if err != nil {
		return err
	}
	fmt.Printf("10 + 20 = %d\n", sum)

	if _, err := calc.Divide(decimal.NewFromInt(1), decimal.Zero); err != nil {
		fmt.Printf("Divide error: %v\n", err)
	}

	sqrtCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	root, err := calc.CalculateAsync(sqrtCtx, 2)
	if err != nil {
		return err
	}
	fmt.Printf("sqrt(2) = %.6f\n", root)

	// 5. Сотрудники
	db := database.NewMemoryDB()
	defer db.Close()
	if err := database.Seed(ctx, db); err != nil {
		return err
	}
	employees, err := db.ListEmployees(ctx)
	if err != nil {
		return err
	}
	for _, e := range employees {
		fmt.Printf("Employee: %s\n", e)
	}

	fmt.Println("Done.")
	return nil
}

func minMax(values []int) (int, int) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
