package audit

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"hrrecords/internal/domain/page"
)

func TestRecordMarshalsSnapshots(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO audit_events`).
		WithArgs("alice", ActionUpdate, "employee", "7",
			[]byte(`{"name":"Old"}`), []byte(`{"name":"New"}`), "req-1", "10.0.0.1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = New(mock).Record(context.Background(), Event{
		Actor:      "alice",
		Action:     ActionUpdate,
		EntityType: "employee",
		EntityID:   "7",
		RequestID:  "req-1",
		IP:         "10.0.0.1",
		Before:     map[string]string{"name": "Old"},
		After:      map[string]string{"name": "New"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordLeavesMissingSnapshotNull(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO audit_events`).
		WithArgs("alice", ActionDelete, "bonus", "3", []byte(nil), []byte(nil), "", "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = New(mock).Record(context.Background(), Event{Actor: "alice", Action: ActionDelete, EntityType: "bonus", EntityID: "3"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindFiltersAndCounts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM audit_events\s+WHERE entity_type = \$1 AND entity_id = \$2\s+ORDER BY created_at DESC, id ASC\s+LIMIT \$3 OFFSET \$4`).
		WithArgs("employee", "7", 10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "actor", "action", "entity_type", "entity_id", "request_id", "ip", "before_json", "after_json", "created_at"}).
			AddRow(int64(1), "alice", ActionCreate, "employee", "7", "req-1", "10.0.0.1", []byte(nil), []byte(`{"id":7}`), at))
	mock.ExpectQuery(`SELECT COUNT\(1\) FROM audit_events WHERE entity_type = \$1 AND entity_id = \$2`).
		WithArgs("employee", "7").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	result, err := New(mock).Find(context.Background(), Filter{EntityType: "employee", EntityID: "7"},
		page.Request{Size: 10, Sort: []page.Order{{Field: "createdAt", Desc: true}}})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	require.Len(t, result.Items, 1)
	require.JSONEq(t, `{"id":7}`, string(result.Items[0].After))
	require.Nil(t, result.Items[0].Before)
	require.NoError(t, mock.ExpectationsWereMet())
}
