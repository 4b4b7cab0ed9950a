package database_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/portfolio-space/portfolio/internal/database"
	"github.com/portfolio-space/portfolio/internal/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	countProjects = regexp.QuoteMeta("SELECT count(*) FROM `projects`")
	countSkills   = regexp.QuoteMeta("SELECT count(*) FROM `skills`")
	insertProject = regexp.QuoteMeta("INSERT INTO `projects`")
	insertSkill   = regexp.QuoteMeta("INSERT INTO `skills`")
	tableExists   = regexp.QuoteMeta("SELECT count(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?")
)

var portfolioTables = []string{"projects", "skills", "contacts"}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count(*)"}).AddRow(n)
}

func TestStoreAcquire(t *testing.T) {
	store, mock := dbtest.NewStore(t)

	t.Run("hands out a live connection", func(t *testing.T) {
		mock.ExpectPing()

		conn, err := store.Acquire(context.Background())
		require.NoError(t, err)
		require.NotNil(t, conn)
		conn.Release()
		conn.Release()
	})

	t.Run("reports unavailable when ping fails", func(t *testing.T) {
		mock.ExpectPing().WillReturnError(errors.New("dial tcp: connection refused"))

		conn, err := store.Acquire(context.Background())
		assert.Nil(t, conn)
		assert.ErrorIs(t, err, database.ErrUnavailable)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorePing(t *testing.T) {
	store, mock := dbtest.NewStore(t)

	mock.ExpectPing()
	assert.NoError(t, store.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("gone"))
	assert.ErrorIs(t, store.Ping(context.Background()), database.ErrUnavailable)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("fills empty tables", func(t *testing.T) {
		store, mock := dbtest.NewStore(t)
		mock.ExpectPing()
		mock.ExpectBegin()
		mock.ExpectQuery(countProjects).WillReturnRows(countRows(0))
		mock.ExpectExec(insertProject).WillReturnResult(sqlmock.NewResult(1, 4))
		mock.ExpectQuery(countSkills).WillReturnRows(countRows(0))
		mock.ExpectExec(insertSkill).WillReturnResult(sqlmock.NewResult(1, 12))
		mock.ExpectCommit()

		conn, err := store.Acquire(ctx)
		require.NoError(t, err)
		defer conn.Release()

		res, err := database.Seed(conn.DB(ctx))
		require.NoError(t, err)
		assert.Equal(t, database.SeedResult{Projects: 4, Skills: 12}, res)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("leaves populated tables alone", func(t *testing.T) {
		store, mock := dbtest.NewStore(t)
		mock.ExpectPing()
		mock.ExpectBegin()
		mock.ExpectQuery(countProjects).WillReturnRows(countRows(4))
		mock.ExpectQuery(countSkills).WillReturnRows(countRows(1))
		mock.ExpectCommit()

		conn, err := store.Acquire(ctx)
		require.NoError(t, err)
		defer conn.Release()

		res, err := database.Seed(conn.DB(ctx))
		require.NoError(t, err)
		assert.Equal(t, database.SeedResult{}, res)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on insert failure", func(t *testing.T) {
		store, mock := dbtest.NewStore(t)
		mock.ExpectPing()
		mock.ExpectBegin()
		mock.ExpectQuery(countProjects).WillReturnRows(countRows(0))
		mock.ExpectExec(insertProject).WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		conn, err := store.Acquire(ctx)
		require.NoError(t, err)
		defer conn.Release()

		_, err = database.Seed(conn.DB(ctx))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "projects")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStoreInit(t *testing.T) {
	ctx := context.Background()

	t.Run("existing tables get no DDL", func(t *testing.T) {
		store, mock := dbtest.NewStore(t)
		mock.ExpectPing()
		for _, table := range portfolioTables {
			mock.ExpectQuery(tableExists).WithArgs(table).WillReturnRows(countRows(1))
		}
		mock.ExpectBegin()
		mock.ExpectQuery(countProjects).WillReturnRows(countRows(4))
		mock.ExpectQuery(countSkills).WillReturnRows(countRows(12))
		mock.ExpectCommit()

		res, err := store.Init(ctx)
		require.NoError(t, err)
		assert.Equal(t, database.SeedResult{}, res)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing tables are created then seeded", func(t *testing.T) {
		store, mock := dbtest.NewStore(t)
		mock.ExpectPing()
		for _, table := range portfolioTables {
			mock.ExpectQuery(tableExists).WithArgs(table).WillReturnRows(countRows(0))
			mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE `" + table + "`")).WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectBegin()
		mock.ExpectQuery(countProjects).WillReturnRows(countRows(0))
		mock.ExpectExec(insertProject).WillReturnResult(sqlmock.NewResult(1, 4))
		mock.ExpectQuery(countSkills).WillReturnRows(countRows(0))
		mock.ExpectExec(insertSkill).WillReturnResult(sqlmock.NewResult(1, 12))
		mock.ExpectCommit()

		res, err := store.Init(ctx)
		require.NoError(t, err)
		assert.Equal(t, database.SeedResult{Projects: 4, Skills: 12}, res)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("only the missing table is created", func(t *testing.T) {
		store, mock := dbtest.NewStore(t)
		mock.ExpectPing()
		mock.ExpectQuery(tableExists).WithArgs("projects").WillReturnRows(countRows(1))
		mock.ExpectQuery(tableExists).WithArgs("skills").WillReturnRows(countRows(1))
		mock.ExpectQuery(tableExists).WithArgs("contacts").WillReturnRows(countRows(0))
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE `contacts`")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectBegin()
		mock.ExpectQuery(countProjects).WillReturnRows(countRows(4))
		mock.ExpectQuery(countSkills).WillReturnRows(countRows(12))
		mock.ExpectCommit()

		_, err := store.Init(ctx)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create failure aborts before seeding", func(t *testing.T) {
		store, mock := dbtest.NewStore(t)
		mock.ExpectPing()
		mock.ExpectQuery(tableExists).WithArgs("projects").WillReturnRows(countRows(0))
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE `projects`")).WillReturnError(errors.New("access denied"))

		_, err := store.Init(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create table projects")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStoreInitUnavailable(t *testing.T) {
	store, mock := dbtest.NewStore(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	_, err := store.Init(context.Background())
	assert.ErrorIs(t, err, database.ErrUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedData(t *testing.T) {
	projects := database.SeedProjects()
	require.Len(t, projects, 4)
	assert.Equal(t, "E-Commerce Platform", projects[0].Name)
	assert.Equal(t, "Full-stack e-commerce solution with payment integration", *projects[0].Description)
	assert.Equal(t, "React, Node.js, MongoDB, Stripe", *projects[0].Technologies)
	assert.Equal(t, "Machine Learning Pipeline", projects[3].Name)

	skills := database.SeedSkills()
	require.Len(t, skills, 12)
	assert.Equal(t, "Python", skills[0].Name)
	assert.Equal(t, "Backend", *skills[0].Category)
	assert.Equal(t, "CI/CD", skills[11].Name)
	assert.Equal(t, "DevOps", *skills[11].Category)
}
