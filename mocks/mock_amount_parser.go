package mocks

import (
	"github.com/stretchr/testify/mock"

	"dentrack/internal/domain"
	"dentrack/internal/port"
)

type MockAmountParser struct {
	mock.Mock
}

func (m *MockAmountParser) Parse(text string) domain.AmountSummary {
	args := m.Called(text)
	return args.Get(0).(domain.AmountSummary)
}

type MockParserRegistry struct {
	mock.Mock
}

func (m *MockParserRegistry) ForClinic(name string) port.AmountParser {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(port.AmountParser)
}
