package messages

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

const (
	EmployeeNotFoundByID         = "employee.not-found.by-id"
	EmployeeEmailNotUnique       = "employee.email.is-not-unique"
	EmployeePhoneNumberNotUnique = "employee.phone-number.is-not-unique"
	SalaryNotFound               = "salary.not-found.by-employee-and-salary-ids"
	PayrollNotFound              = "payroll.not-found.by-employee-salary-and-payroll-ids"
	BonusNotFound                = "bonus.not-found.by-employee-and-bonus-ids"
	LeaveNotFound                = "leave.not-found.by-employee-and-leave-ids"
	PositionNotFoundByID         = "position.not-found.by-id"
	PositionNotFoundForEmployee  = "position.not-found.by-employee-and-position-ids"
	PositionNameNotUnique        = "position.name.is-not-unique"
	RequestIDInvalid             = "request.id.invalid"
	RequestPayloadInvalid        = "request.payload.invalid"
	RequestQueryInvalid          = "request.query.invalid"
	PageSortUnsupported          = "page.sort.unsupported"
)

//go:embed active.*.toml
var catalogs embed.FS

// Resolver turns message codes into human-readable text.
type Resolver interface {
	Get(code string, data map[string]any) string
}

type Catalog struct {
	localizer *i18n.Localizer
}

func New(lang string) (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, file := range []string{"active.en.toml", "active.ru.toml"} {
		if _, err := bundle.LoadMessageFileFS(catalogs, file); err != nil {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return &Catalog{localizer: i18n.NewLocalizer(bundle, lang)}, nil
}

// Get falls back to the code itself when no translation exists.
func (c *Catalog) Get(code string, data map[string]any) string {
	text, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    code,
		TemplateData: data,
	})
	if err != nil || text == "" {
		return code
	}
	return text
}
