package student

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumusproject/lumus-backend/internal/course"
)

type fakeRepo struct {
	nextID   int
	students map[string]*Student // by id
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{students: make(map[string]*Student)}
}

func (f *fakeRepo) Create(ctx context.Context, s *Student) error {
	for _, existing := range f.students {
		if existing.Email == s.Email {
			return ErrEmailTaken
		}
		if s.RegistrationNumber != "" && existing.RegistrationNumber == s.RegistrationNumber {
			return ErrRegistrationTaken
		}
	}
	f.nextID++
	s.ID = fmt.Sprintf("student-%d", f.nextID)
	stored := *s
	f.students[s.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*Student, error) {
	for _, s := range f.students {
		if s.Email == email {
			copied := *s
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) GetByRegistration(ctx context.Context, number string) (*Student, error) {
	for _, s := range f.students {
		if s.RegistrationNumber == number {
			copied := *s
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Student, int, error) {
	var out []*Student
	for _, s := range f.students {
		if filter.CourseCode != "" && s.CourseCode != filter.CourseCode {
			continue
		}
		out = append(out, s)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(ctx context.Context, s *Student) error {
	if _, ok := f.students[s.ID]; !ok {
		return ErrNotFound
	}
	stored := *s
	f.students[s.ID] = &stored
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.students[id]; !ok {
		return ErrNotFound
	}
	delete(f.students, id)
	return nil
}

type fakeCourseService struct {
	codes map[string]*course.Course
}

func newFakeCourseService(codes ...string) *fakeCourseService {
	f := &fakeCourseService{codes: make(map[string]*course.Course)}
	for _, c := range codes {
		f.codes[c] = &course.Course{ID: "course-" + c, Name: "Course " + c, CourseCode: c}
	}
	return f
}

func (f *fakeCourseService) Create(ctx context.Context, req course.CreateRequest) (*course.Course, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCourseService) GetByCode(ctx context.Context, code string) (*course.Course, error) {
	c, ok := f.codes[code]
	if !ok {
		return nil, course.ErrNotFound
	}
	return c, nil
}

func (f *fakeCourseService) List(ctx context.Context, filter course.Filter) ([]*course.Course, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeCourseService) Update(ctx context.Context, code string, req course.UpdateRequest) (*course.Course, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCourseService) Delete(ctx context.Context, code string) error {
	return errors.New("not implemented")
}

func newTestService(repo *fakeRepo) Service {
	return NewService(repo, newFakeCourseService("CHEM101"))
}

func TestCreateStudent(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name: "valid",
			req:  CreateRequest{Name: "Ana Silva", Email: " Ana@Example.COM ", RegistrationNumber: " 2026001 ", CourseCode: "chem101"},
		},
		{
			name:    "missing name",
			req:     CreateRequest{Email: "bob@example.com"},
			wantErr: ErrNameRequired,
		},
		{
			name:    "missing email",
			req:     CreateRequest{Name: "Bob Jones"},
			wantErr: ErrEmailRequired,
		},
		{
			name:    "unknown course",
			req:     CreateRequest{Name: "Bob Jones", Email: "bob@example.com", CourseCode: "NOPE999"},
			wantErr: ErrCourseNotFound,
		},
		{
			name:    "duplicate email, case-insensitive",
			req:     CreateRequest{Name: "Ana Clone", Email: "ANA@example.com"},
			wantErr: ErrEmailTaken,
		},
		{
			name:    "duplicate registration number",
			req:     CreateRequest{Name: "Carl Reis", Email: "carl@example.com", RegistrationNumber: "2026001"},
			wantErr: ErrRegistrationTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := svc.Create(ctx, tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			// Email lowercased, registration trimmed, course code upper-cased.
			require.Equal(t, "ana@example.com", st.Email)
			require.Equal(t, "2026001", st.RegistrationNumber)
			require.Equal(t, "CHEM101", st.CourseCode)
			require.NotEmpty(t, st.ID)
		})
	}
}

func TestGetStudentLookups(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{Name: "Ana Silva", Email: "ana@example.com", RegistrationNumber: "2026001"})
	require.NoError(t, err)

	byEmail, err := svc.GetByEmail(ctx, " ANA@example.com ")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	byReg, err := svc.GetByRegistration(ctx, " 2026001 ")
	require.NoError(t, err)
	require.Equal(t, created.ID, byReg.ID)

	_, err = svc.GetByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByRegistration(ctx, "0000000")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStudent(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{Name: "Ana Silva", Email: "ana@example.com"})
	require.NoError(t, err)

	code := "chem101"
	phone := "+55 11 99999-0000"
	st, err := svc.Update(ctx, created.ID, UpdateRequest{CourseCode: &code, Phone: &phone})
	require.NoError(t, err)
	require.Equal(t, "CHEM101", st.CourseCode)
	require.Equal(t, phone, st.Phone)
	// Untouched fields survive.
	require.Equal(t, "ana@example.com", st.Email)

	empty := ""
	_, err = svc.Update(ctx, created.ID, UpdateRequest{Name: &empty})
	require.ErrorIs(t, err, ErrNameRequired)

	bad := "NOPE999"
	_, err = svc.Update(ctx, created.ID, UpdateRequest{CourseCode: &bad})
	require.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.Update(ctx, "missing", UpdateRequest{Phone: &phone})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteStudent(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{Name: "Ana Silva", Email: "ana@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}

func TestListStudentsByCourse(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "Ana Silva", Email: "ana@example.com", CourseCode: "CHEM101"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Name: "Bob Jones", Email: "bob@example.com"})
	require.NoError(t, err)

	all, total, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, all, 2)

	enrolled, total, err := svc.List(ctx, Filter{CourseCode: "chem101"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "ana@example.com", enrolled[0].Email)
}
