package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/forumdesign/internal/common"
	"github.com/dmitrijs2005/forumdesign/internal/forum/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	hash = strings.Repeat("a", 128)
	salt = strings.Repeat("b", 64)

	columns = []string{"id", "email", "hash", "salt", "name"}
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

func newUser(t *testing.T) *models.User {
	t.Helper()
	u, err := models.NewUser(uuid.New(), "casey@example.com", hash, salt, "casey")
	require.NoError(t, err)
	return u
}

func TestInsert_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	u := newUser(t)

	q := `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*hash,\s*salt,\s*name\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)$`
	mock.ExpectExec(q).
		WithArgs(u.ID().String(), "casey@example.com", hash, salt, "casey").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(context.Background(), u))
}

func TestInsert_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	u := newUser(t)

	mock.ExpectExec(`INSERT INTO users`).WillReturnError(errors.New("duplicate key"))

	err := repo.Insert(context.Background(), u)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrStorage)
	assert.Regexp(t, regexp.MustCompile(`insert user: db error: .*duplicate key`), err.Error())
}

func TestUpdate(t *testing.T) {
	q := `(?s)^UPDATE\s+users\s+SET\s+email\s*=\s*\$2,\s*hash\s*=\s*\$3,\s*salt\s*=\s*\$4,\s*name\s*=\s*\$5\s+WHERE\s+id\s*=\s*\$1$`

	t.Run("one row", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		u := newUser(t)
		require.NoError(t, u.SetName("jo"))

		mock.ExpectExec(q).
			WithArgs(u.ID().String(), u.Email(), hash, salt, "jo").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), u))
	})

	t.Run("no row", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), newUser(t))
		assert.ErrorIs(t, err, common.ErrorNotFound)
		assert.NotErrorIs(t, err, common.ErrStorage)
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WillReturnError(errors.New("db down"))

		err := repo.Update(context.Background(), newUser(t))
		assert.ErrorIs(t, err, common.ErrStorage)
	})

	t.Run("rows affected error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WillReturnResult(sqlmock.NewErrorResult(errors.New("rows-err")))

		err := repo.Update(context.Background(), newUser(t))
		assert.ErrorIs(t, err, common.ErrStorage)
		assert.Contains(t, err.Error(), "rows-err")
	})
}

func TestDelete(t *testing.T) {
	q := `(?s)^DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`
	id := uuid.New()

	t.Run("one row", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs(id.String()).WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, repo.Delete(context.Background(), id))
	})

	t.Run("no row", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs(id.String()).WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.Delete(context.Background(), id), common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs(id.String()).WillReturnError(errors.New("db down"))
		assert.ErrorIs(t, repo.Delete(context.Background(), id), common.ErrStorage)
	})
}

func TestFindByID(t *testing.T) {
	q := `(?s)^SELECT\s+id,\s*email,\s*hash,\s*salt,\s*name\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(id.String(), "a@b.com", hash, salt, "casey"))

		got, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, models.RestoreUser(id, "a@b.com", hash, salt, "casey"), got)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(id.String()).WillReturnError(sql.ErrNoRows)

		got, err := repo.FindByID(context.Background(), id)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("malformed row", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows(columns).AddRow("garbage", "a@b.com", hash, salt, "casey"))

		_, err := repo.FindByID(context.Background(), id)
		assert.ErrorIs(t, err, common.ErrStorage)
	})
}

func TestFindByEmail(t *testing.T) {
	q := `(?s)^SELECT\s+id,\s*email,\s*hash,\s*salt,\s*name\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`
	id := uuid.New()

	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(q).WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(id.String(), "a@b.com", hash, salt, "casey"))

	got, err := repo.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID())
}

func TestFindAll(t *testing.T) {
	q := `(?s)^SELECT\s+id,\s*email,\s*hash,\s*salt,\s*name\s+FROM\s+users\s+ORDER\s+BY\s+name,\s*id$`
	a, b := uuid.New(), uuid.New()

	t.Run("rows", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WillReturnRows(sqlmock.NewRows(columns).
			AddRow(a.String(), "a@b.com", hash, salt, "alice").
			AddRow(b.String(), "b@b.com", hash, salt, "bob"))

		got, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, a, got[0].ID())
		assert.Equal(t, "bob", got[1].Name())
	})

	t.Run("empty", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WillReturnRows(sqlmock.NewRows(columns))

		got, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WillReturnError(errors.New("db down"))

		_, err := repo.FindAll(context.Background())
		assert.ErrorIs(t, err, common.ErrStorage)
	})

	t.Run("row error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WillReturnRows(sqlmock.NewRows(columns).
			AddRow(a.String(), "a@b.com", hash, salt, "alice").
			RowError(0, errors.New("broken row")))

		_, err := repo.FindAll(context.Background())
		assert.ErrorIs(t, err, common.ErrStorage)
	})
}
