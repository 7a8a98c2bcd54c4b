package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/velinpetkov/task-tracker-api/internal/models"
)

func setupTaskRepo(t *testing.T) (TaskRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewTaskRepository(db), db
}

func TestTaskRepository_ListByOwner(t *testing.T) {
	repo, _ := setupTaskRepo(t)

	for _, task := range []*models.Task{
		{Description: "a1", Status: models.TaskStatusWaiting, UserID: 1},
		{Description: "a2", Status: models.TaskStatusCompleted, UserID: 1},
		{Description: "b1", Status: models.TaskStatusWaiting, UserID: 2},
	} {
		require.NoError(t, repo.Create(task))
	}

	tasks, err := repo.ListByOwner(1, TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "a1", tasks[0].Description)
	require.Equal(t, "a2", tasks[1].Description)

	completed := models.TaskStatusCompleted
	tasks, err = repo.ListByOwner(1, TaskFilter{Status: &completed})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "a2", tasks[0].Description)

	tasks, err = repo.ListByOwner(3, TaskFilter{})
	require.NoError(t, err)
	require.Empty(t, tasks)
}

func TestTaskRepository_CountByStatus(t *testing.T) {
	repo, _ := setupTaskRepo(t)

	for _, task := range []*models.Task{
		{Description: "w1", Status: models.TaskStatusWaiting, UserID: 1},
		{Description: "w2", Status: models.TaskStatusWaiting, UserID: 1},
		{Description: "p1", Status: models.TaskStatusInProgress, UserID: 1},
		{Description: "other", Status: models.TaskStatusCompleted, UserID: 2},
	} {
		require.NoError(t, repo.Create(task))
	}

	counts, err := repo.CountByStatus(1)
	require.NoError(t, err)
	require.EqualValues(t, 3, counts.Total)
	require.EqualValues(t, 2, counts.Waiting)
	require.EqualValues(t, 1, counts.InProgress)
	require.EqualValues(t, 0, counts.Completed)
	require.Equal(t, counts.Total, counts.Waiting+counts.InProgress+counts.Completed)
}

// TestTaskRepository_CountByStatus_SQL pins the generated aggregate query.
func TestTaskRepository_CountByStatus_SQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	repo := NewTaskRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT status, COUNT(*) AS count FROM `tasks` WHERE user_id = ? GROUP BY `status`",
	)).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("waiting", 2).
			AddRow("completed", 1))

	counts, err := repo.CountByStatus(7)
	require.NoError(t, err)
	require.EqualValues(t, 3, counts.Total)
	require.EqualValues(t, 2, counts.Waiting)
	require.EqualValues(t, 1, counts.Completed)

	require.NoError(t, mock.ExpectationsWereMet())
}
