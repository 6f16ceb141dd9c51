package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/aanand-mishra/student-registry/internal/config"
	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/types"
)

type SQLiteSuite struct {
	suite.Suite
	db  *SQLite
	ctx context.Context
}

func TestSQLiteSuite(t *testing.T) {
	suite.Run(t, new(SQLiteSuite))
}

func (s *SQLiteSuite) SetupTest() {
	db, err := New(&config.Config{StoragePath: filepath.Join(s.T().TempDir(), "test.db")})
	s.Require().NoError(err)
	s.db = db
	s.ctx = context.Background()
}

func (s *SQLiteSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func newStudent(ra, cpf, email string) types.Student {
	return types.Student{
		ID:        uuid.New(),
		Name:      "João Silva",
		Email:     email,
		RA:        ra,
		CPF:       cpf,
		CreatedAt: time.Now().UTC(),
	}
}

func (s *SQLiteSuite) TestCreateAndGet() {
	student := newStudent("123456", "52998224725", "joao@example.com")
	s.Require().NoError(s.db.CreateStudent(s.ctx, student))

	got, err := s.db.GetStudentByID(s.ctx, student.ID)
	s.Require().NoError(err)
	s.Equal(student.ID, got.ID)
	s.Equal("João Silva", got.Name)
	s.Equal("joao@example.com", got.Email)
	s.Equal("123456", got.RA)
	s.Equal("52998224725", got.CPF)
	s.WithinDuration(student.CreatedAt, got.CreatedAt, time.Second)
	s.Nil(got.UpdatedAt)
}

func (s *SQLiteSuite) TestGetStudentByID_NotFound() {
	_, err := s.db.GetStudentByID(s.ctx, uuid.New())
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *SQLiteSuite) TestGetStudents() {
	empty, err := s.db.GetStudents(s.ctx)
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)

	first := newStudent("111111", "52998224725", "a@example.com")
	second := newStudent("222222", "11144477735", "b@example.com")
	second.CreatedAt = first.CreatedAt.Add(time.Millisecond)
	s.Require().NoError(s.db.CreateStudent(s.ctx, second))
	s.Require().NoError(s.db.CreateStudent(s.ctx, first))

	students, err := s.db.GetStudents(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(students, 2)
	s.Equal(first.ID, students[0].ID)
	s.Equal(second.ID, students[1].ID)
}

func (s *SQLiteSuite) TestCreateStudent_UniqueConstraints() {
	s.Require().NoError(s.db.CreateStudent(s.ctx, newStudent("123456", "52998224725", "joao@example.com")))

	cases := map[string]types.Student{
		"same ra":              newStudent("123456", "11144477735", "other@example.com"),
		"same cpf":             newStudent("654321", "52998224725", "other@example.com"),
		"email differing case": newStudent("654321", "11144477735", "JOAO@example.com"),
	}
	for name, student := range cases {
		s.Run(name, func() {
			err := s.db.CreateStudent(s.ctx, student)
			s.ErrorIs(err, storage.ErrConflict)
		})
	}

	students, err := s.db.GetStudents(s.ctx)
	s.Require().NoError(err)
	s.Len(students, 1)
}

func (s *SQLiteSuite) TestExists() {
	student := newStudent("123456", "52998224725", "joao@example.com")
	s.Require().NoError(s.db.CreateStudent(s.ctx, student))

	found, err := s.db.ExistsByRA(s.ctx, "123456")
	s.Require().NoError(err)
	s.True(found)

	found, err = s.db.ExistsByRA(s.ctx, "999999")
	s.Require().NoError(err)
	s.False(found)

	found, err = s.db.ExistsByCPF(s.ctx, "52998224725")
	s.Require().NoError(err)
	s.True(found)

	found, err = s.db.ExistsByEmail(s.ctx, "Joao@Example.COM", uuid.Nil)
	s.Require().NoError(err)
	s.True(found, "email lookup is case-insensitive")

	found, err = s.db.ExistsByEmail(s.ctx, "joao@example.com", student.ID)
	s.Require().NoError(err)
	s.False(found, "the excluded record does not count")
}

func (s *SQLiteSuite) TestUpdateStudent() {
	student := newStudent("123456", "52998224725", "joao@example.com")
	s.Require().NoError(s.db.CreateStudent(s.ctx, student))

	updatedAt := time.Now().UTC().Add(time.Minute)
	student.Name = "João Pedro"
	student.Email = "jp@example.com"
	student.UpdatedAt = &updatedAt
	s.Require().NoError(s.db.UpdateStudent(s.ctx, student))

	got, err := s.db.GetStudentByID(s.ctx, student.ID)
	s.Require().NoError(err)
	s.Equal("João Pedro", got.Name)
	s.Equal("jp@example.com", got.Email)
	s.Equal("123456", got.RA)
	s.Require().NotNil(got.UpdatedAt)
	s.WithinDuration(updatedAt, *got.UpdatedAt, time.Second)
}

func (s *SQLiteSuite) TestUpdateStudent_EmailConflict() {
	s.Require().NoError(s.db.CreateStudent(s.ctx, newStudent("111111", "52998224725", "a@example.com")))
	other := newStudent("222222", "11144477735", "b@example.com")
	s.Require().NoError(s.db.CreateStudent(s.ctx, other))

	other.Email = "A@example.com"
	s.ErrorIs(s.db.UpdateStudent(s.ctx, other), storage.ErrConflict)
}

func (s *SQLiteSuite) TestUpdateStudent_NotFound() {
	err := s.db.UpdateStudent(s.ctx, newStudent("123456", "52998224725", "joao@example.com"))
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *SQLiteSuite) TestDeleteStudentByID() {
	student := newStudent("123456", "52998224725", "joao@example.com")
	s.Require().NoError(s.db.CreateStudent(s.ctx, student))

	s.Require().NoError(s.db.DeleteStudentByID(s.ctx, student.ID))
	s.ErrorIs(s.db.DeleteStudentByID(s.ctx, student.ID), storage.ErrNotFound)

	found, err := s.db.ExistsByRA(s.ctx, "123456")
	s.Require().NoError(err)
	s.False(found)
}

func (s *SQLiteSuite) TestUsers() {
	user := types.User{
		ID:           uuid.New(),
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC(),
	}
	s.Require().NoError(s.db.CreateUser(s.ctx, user))

	got, err := s.db.GetUserByEmail(s.ctx, "ADMIN@example.com")
	s.Require().NoError(err)
	s.Equal(user.ID, got.ID)
	s.Equal(user.PasswordHash, got.PasswordHash)

	found, err := s.db.ExistsUserByEmail(s.ctx, "admin@example.com")
	s.Require().NoError(err)
	s.True(found)

	user.ID = uuid.New()
	s.ErrorIs(s.db.CreateUser(s.ctx, user), storage.ErrConflict)

	_, err = s.db.GetUserByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, storage.ErrNotFound)
}
