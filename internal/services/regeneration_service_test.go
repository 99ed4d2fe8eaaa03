package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/habitquest/habit-quest-api/internal/models"
	"github.com/habitquest/habit-quest-api/internal/repository"
)

// failingCreateRepo wraps a real TaskRepository and fails successor
// creation for tasks with a given title.
type failingCreateRepo struct {
	repository.TaskRepository
	failTitle string
}

func (r *failingCreateRepo) Create(task *models.Task) error {
	if task.Title == r.failTitle {
		return errors.New("simulated store failure")
	}
	return r.TaskRepository.Create(task)
}

// failingListRepo fails every candidate fetch.
type failingListRepo struct {
	repository.TaskRepository
}

func (r *failingListRepo) ListRegenerationCandidates(limit, offset int) ([]models.Task, error) {
	return nil, errors.New("simulated fetch failure")
}

// RegenerationServiceTestSuite defines the test suite for RegenerationService
type RegenerationServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	taskRepo repository.TaskRepository
	service  *RegenerationService
	now      time.Time
	paris    *time.Location
}

// SetupTest runs before each test
func (suite *RegenerationServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Task{})
	suite.Require().NoError(err)

	suite.paris, err = time.LoadLocation("Europe/Paris")
	suite.Require().NoError(err)

	// Wednesday 2024-05-15, 03:00 in Paris.
	suite.now = time.Date(2024, 5, 15, 3, 0, 0, 0, suite.paris)

	suite.taskRepo = repository.NewTaskRepository(suite.db)
	suite.service = newTestRegenerationService(suite.taskRepo, suite.now)
}

func newTestRegenerationService(repo repository.TaskRepository, now time.Time) *RegenerationService {
	svc := NewRegenerationService(repo, 100, 0)
	svc.now = func() time.Time { return now }
	return svc
}

// TearDownTest runs after each test
func (suite *RegenerationServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RegenerationServiceTestSuite) createTask(title string, taskType models.TaskType, status models.TaskStatus, dateEnd *time.Time) *models.Task {
	task := &models.Task{
		Title:      title,
		Type:       taskType,
		Status:     status,
		Difficulty: models.DifficultyEasy,
		DateEnd:    dateEnd,
		Timezone:   "Europe/Paris",
		UserID:     1,
	}
	suite.db.Create(task)
	return task
}

func (suite *RegenerationServiceTestSuite) expiredEnd() *time.Time {
	// Window closed two local days before the sweep runs.
	end := time.Date(2024, 5, 13, 23, 59, 59, 999000000, suite.paris)
	return &end
}

func (suite *RegenerationServiceTestSuite) futureEnd() *time.Time {
	end := time.Date(2024, 5, 15, 23, 59, 59, 999000000, suite.paris)
	return &end
}

func (suite *RegenerationServiceTestSuite) TestRun_EmptyDatabase() {
	report := suite.service.Run()

	assert.Equal(suite.T(), RegenerationReport{}, report)
}

func (suite *RegenerationServiceTestSuite) TestRun_ExpiredPendingBecomesExpired() {
	task := suite.createTask("Morning run", models.TaskTypeDaily, models.TaskStatusPending, suite.expiredEnd())

	report := suite.service.Run()

	assert.Equal(suite.T(), 1, report.Processed)
	assert.Equal(suite.T(), 1, report.Regenerated)
	assert.Equal(suite.T(), 0, report.Errors)

	var predecessor models.Task
	suite.db.First(&predecessor, task.ID)
	assert.Equal(suite.T(), models.TaskStatusExpired, predecessor.Status)

	var successor models.Task
	err := suite.db.Where("id <> ? AND title = ?", task.ID, "Morning run").First(&successor).Error
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusPending, successor.Status)
	assert.Equal(suite.T(), task.UserID, successor.UserID)
	suite.Require().NotNil(successor.DateEnd)

	// The successor carries the current day's window.
	assert.Equal(suite.T(), 15, successor.DateStart.In(suite.paris).Day())
	assert.Equal(suite.T(), 15, successor.DateEnd.In(suite.paris).Day())
}

func (suite *RegenerationServiceTestSuite) TestRun_ExpiredCompletedBecomesTrueCompleted() {
	task := suite.createTask("Weekly review", models.TaskTypeWeekly, models.TaskStatusCompleted, suite.expiredEnd())

	report := suite.service.Run()

	assert.Equal(suite.T(), 1, report.Regenerated)

	var predecessor models.Task
	suite.db.First(&predecessor, task.ID)
	assert.Equal(suite.T(), models.TaskStatusTrueCompleted, predecessor.Status)

	// The weekly successor spans Monday through Sunday of the current week.
	var successor models.Task
	suite.db.Where("id <> ?", task.ID).First(&successor)
	assert.Equal(suite.T(), time.Monday, successor.DateStart.In(suite.paris).Weekday())
	assert.Equal(suite.T(), time.Sunday, successor.DateEnd.In(suite.paris).Weekday())
}

func (suite *RegenerationServiceTestSuite) TestRun_NotYetExpiredUntouched() {
	task := suite.createTask("Still active", models.TaskTypeDaily, models.TaskStatusPending, suite.futureEnd())

	report := suite.service.Run()

	assert.Equal(suite.T(), 1, report.Processed)
	assert.Equal(suite.T(), 0, report.Regenerated)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	var unchanged models.Task
	suite.db.First(&unchanged, task.ID)
	assert.Equal(suite.T(), models.TaskStatusPending, unchanged.Status)
}

func (suite *RegenerationServiceTestSuite) TestRun_NeverTouchesNonRecurringTypes() {
	// Even with a lapsed end date on the row, the sweep must not select
	// REPEATABLE or ONE_TIME tasks.
	repeatable := suite.createTask("Repeatable", models.TaskTypeRepeatable, models.TaskStatusPending, suite.expiredEnd())
	oneTime := suite.createTask("One time", models.TaskTypeOneTime, models.TaskStatusPending, suite.expiredEnd())

	report := suite.service.Run()

	assert.Equal(suite.T(), 0, report.Processed)
	assert.Equal(suite.T(), 0, report.Regenerated)

	for _, id := range []uint64{repeatable.ID, oneTime.ID} {
		var unchanged models.Task
		suite.db.First(&unchanged, id)
		assert.Equal(suite.T(), models.TaskStatusPending, unchanged.Status)
	}
}

func (suite *RegenerationServiceTestSuite) TestRun_SecondSweepIsNoOp() {
	suite.createTask("Morning run", models.TaskTypeDaily, models.TaskStatusPending, suite.expiredEnd())

	first := suite.service.Run()
	assert.Equal(suite.T(), 1, first.Regenerated)

	second := suite.service.Run()
	assert.Equal(suite.T(), 0, second.Regenerated)
	assert.Equal(suite.T(), 0, second.Errors)

	// Exactly one successor exists.
	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.Equal(suite.T(), int64(2), count)
}

func (suite *RegenerationServiceTestSuite) TestRun_PerTaskFailureIsIsolated() {
	suite.createTask("First", models.TaskTypeDaily, models.TaskStatusPending, suite.expiredEnd())
	suite.createTask("Broken", models.TaskTypeDaily, models.TaskStatusPending, suite.expiredEnd())
	suite.createTask("Third", models.TaskTypeDaily, models.TaskStatusPending, suite.expiredEnd())

	repo := &failingCreateRepo{TaskRepository: suite.taskRepo, failTitle: "Broken"}
	service := newTestRegenerationService(repo, suite.now)

	report := service.Run()

	assert.Equal(suite.T(), 3, report.Processed)
	assert.Equal(suite.T(), 2, report.Regenerated)
	assert.Equal(suite.T(), 1, report.Errors)

	// The failed task stays in the candidate set for the next run.
	var broken models.Task
	suite.db.Where("title = ?", "Broken").First(&broken)
	assert.Equal(suite.T(), models.TaskStatusPending, broken.Status)
}

func (suite *RegenerationServiceTestSuite) TestRun_InvalidTimezoneCountsAsItemError() {
	task := suite.createTask("Bad zone", models.TaskTypeDaily, models.TaskStatusPending, suite.expiredEnd())
	suite.db.Model(task).Update("timezone", "Not/A_Zone")

	report := suite.service.Run()

	assert.Equal(suite.T(), 1, report.Processed)
	assert.Equal(suite.T(), 0, report.Regenerated)
	assert.Equal(suite.T(), 1, report.Errors)
}

func (suite *RegenerationServiceTestSuite) TestRun_BatchFetchErrorAbortsSweep() {
	service := newTestRegenerationService(&failingListRepo{TaskRepository: suite.taskRepo}, suite.now)

	report := service.Run()

	assert.Equal(suite.T(), 0, report.Processed)
	assert.Equal(suite.T(), 0, report.Regenerated)
	assert.Equal(suite.T(), 1, report.Errors)
}

func (suite *RegenerationServiceTestSuite) TestRun_MultipleBatches() {
	for i := 0; i < 5; i++ {
		suite.createTask("Task", models.TaskTypeDaily, models.TaskStatusPending, suite.expiredEnd())
	}

	service := NewRegenerationService(suite.taskRepo, 2, 0)
	service.now = func() time.Time { return suite.now }

	// Regenerated rows leave the candidate set while the offset advances,
	// so a single sweep reaches only part of the backlog; repeated sweeps
	// drain it completely.
	total := 0
	for i := 0; i < 5 && total < 5; i++ {
		report := service.Run()
		assert.Equal(suite.T(), 0, report.Errors)
		total += report.Regenerated
	}
	assert.Equal(suite.T(), 5, total)

	// Every original ends up EXPIRED; the successors stay PENDING with
	// the current day's window.
	var expired int64
	suite.db.Model(&models.Task{}).Where("status = ?", models.TaskStatusExpired).Count(&expired)
	assert.Equal(suite.T(), int64(5), expired)
}

func TestRegenerationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegenerationServiceTestSuite))
}
