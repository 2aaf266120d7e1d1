package employee

import (
	"context"
	"errors"

	"hrrecords/internal/domain/apperr"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/platform/messages"
	"hrrecords/internal/platform/querier"
)

type Service struct {
	store    StoreAPI
	tx       querier.Transactor
	messages messages.Resolver
}

func NewService(store StoreAPI, tx querier.Transactor, resolver messages.Resolver) *Service {
	return &Service{store: store, tx: tx, messages: resolver}
}

// FindAll returns the requested page of employees matching every non-empty
// criterion, together with the total number of matches.
func (s *Service) FindAll(ctx context.Context, criteria Criteria, req page.Request) (page.Result[Employee], error) {
	filter := ForCriteria(criteria)
	items, err := s.store.List(ctx, filter, req)
	if err != nil {
		return page.Result[Employee]{}, err
	}
	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return page.Result[Employee]{}, err
	}
	return page.Result[Employee]{Items: items, Total: total}, nil
}

func (s *Service) FindByID(ctx context.Context, id int64) (Employee, error) {
	emp, err := s.store.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Employee{}, s.NotFound(id)
	}
	return emp, err
}

func (s *Service) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return s.store.ExistsByID(ctx, id)
}

// RequireExists fails with a not-found error naming the employee when id is unknown.
func (s *Service) RequireExists(ctx context.Context, id int64) error {
	ok, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return s.NotFound(id)
	}
	return nil
}

func (s *Service) NotFound(id int64) error {
	return apperr.NotFound(s.messages.Get(messages.EmployeeNotFoundByID, map[string]any{"EmployeeID": id}))
}

func (s *Service) Create(ctx context.Context, emp Employee) (Employee, error) {
	var created Employee
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.checkUnique(ctx, emp, 0); err != nil {
			return err
		}
		var err error
		created, err = s.store.Create(ctx, emp)
		return s.translate(err, emp)
	})
	return created, err
}

// Update replaces the mutable fields of an existing employee. Existence is
// checked before uniqueness, and the employee's own email and phone number
// never count as taken.
func (s *Service) Update(ctx context.Context, id int64, changes Employee) (Employee, error) {
	var updated Employee
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		current, err := s.store.FindByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return s.NotFound(id)
		}
		if err != nil {
			return err
		}
		if err := s.checkUnique(ctx, changes, id); err != nil {
			return err
		}
		current.CopyFrom(changes)
		if err := s.store.Update(ctx, current); err != nil {
			if errors.Is(err, ErrNotFound) {
				return s.NotFound(id)
			}
			return s.translate(err, current)
		}
		updated = current
		return nil
	})
	return updated, err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return s.NotFound(id)
	}
	return err
}

func (s *Service) checkUnique(ctx context.Context, emp Employee, excludeID int64) error {
	taken, err := s.store.ExistsByEmail(ctx, emp.Email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return s.translate(ErrEmailTaken, emp)
	}
	taken, err = s.store.ExistsByPhoneNumber(ctx, emp.PhoneNumber, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return s.translate(ErrPhoneNumberTaken, emp)
	}
	return nil
}

func (s *Service) translate(err error, emp Employee) error {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return apperr.InvalidData(s.messages.Get(messages.EmployeeEmailNotUnique, map[string]any{"Email": emp.Email}))
	case errors.Is(err, ErrPhoneNumberTaken):
		return apperr.InvalidData(s.messages.Get(messages.EmployeePhoneNumberNotUnique, map[string]any{"PhoneNumber": emp.PhoneNumber}))
	default:
		return err
	}
}
