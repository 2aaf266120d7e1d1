package messages

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetRendersTemplateData(t *testing.T) {
	catalog, err := New("en")
	require.NoError(t, err)

	text := catalog.Get(PayrollNotFound, map[string]any{"EmployeeID": 1, "SalaryID": 2, "PayrollID": 3})
	require.Equal(t, "Payroll with id 3 not found for salary with id 2 of employee with id 1", text)
}

func TestGetUsesConfiguredLanguage(t *testing.T) {
	catalog, err := New("ru")
	require.NoError(t, err)

	text := catalog.Get(EmployeeNotFoundByID, map[string]any{"EmployeeID": 7})
	require.Equal(t, "Сотрудник с id 7 не найден", text)
}

func TestGetUnknownCodeReturnsCode(t *testing.T) {
	catalog, err := New("en")
	require.NoError(t, err)

	require.Equal(t, "nope.missing", catalog.Get("nope.missing", nil))
}

func TestEveryCodeHasEnglishAndRussianText(t *testing.T) {
	codes := []string{
		EmployeeNotFoundByID, EmployeeEmailNotUnique, EmployeePhoneNumberNotUnique,
		SalaryNotFound, PayrollNotFound, BonusNotFound, LeaveNotFound,
		PositionNotFoundByID, PositionNotFoundForEmployee, PositionNameNotUnique,
		RequestIDInvalid, RequestPayloadInvalid, RequestQueryInvalid, PageSortUnsupported,
	}
	for _, lang := range []string{"en", "ru"} {
		catalog, err := New(lang)
		require.NoError(t, err)
		for _, code := range codes {
			require.NotEqual(t, code, catalog.Get(code, map[string]any{}), "%s missing in %s", code, lang)
		}
	}
}
