package models

import (
	"fmt"

	"github.com/GGmuzem/showcase-api/internal/stringx"
)

// Допустимый возраст для Person
const (
	MinAge   = 0
	MaxAge   = 150
	AdultAge = 18
	// SeniorAge возраст, с которого AgeGroup возвращает AgeGroupSenior
	SeniorAge = 65
)

// Возрастные группы
const (
	AgeGroupMinor  = "minor"
	AgeGroupAdult  = "adult"
	AgeGroupSenior = "senior"
)

// Person неизменяемое значение: имя и возраст
type Person struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// NewPerson создаёт Person с проверкой полей
func NewPerson(name string, age int) (Person, error) {
	if stringx.IsBlank(name) {
		return Person{}, &ValidationError{Field: "name", Message: "name must not be empty"}
	}
	if age < MinAge || age > MaxAge {
		return Person{}, &ValidationError{Field: "age", Message: fmt.Sprintf("age must be between %d and %d", MinAge, MaxAge)}
	}
	return Person{Name: name, Age: age}, nil
}

func (p Person) DisplayName() string {
	return fmt.Sprintf("%s (%d)", p.Name, p.Age)
}

func (p Person) IsAdult() bool {
	return p.Age >= AdultAge
}

func (p Person) AgeGroup() string {
	switch {
	case p.Age < AdultAge:
		return AgeGroupMinor
	case p.Age < SeniorAge:
		return AgeGroupAdult
	default:
		return AgeGroupSenior
	}
}
