package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mveselov/fitflow/internal/domain"
	"mveselov/fitflow/internal/repository"
)

// Hand-written in-memory fakes for the repository interfaces. Each fake keeps
// its state exported-enough for tests to seed and inspect directly.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	user.ID = id
	cp := *user
	f.users[id] = &cp
	return id, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdateTimezone(_ context.Context, id primitive.ObjectID, timezone string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Timezone = timezone
	return nil
}

type fakeProgramRepo struct {
	programs map[primitive.ObjectID]*domain.Program
	slots    []domain.ProgramSlot
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{programs: make(map[primitive.ObjectID]*domain.Program)}
}

func (f *fakeProgramRepo) Create(_ context.Context, program *domain.Program) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	program.ID = id
	f.programs[id] = program
	return id, nil
}

func (f *fakeProgramRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Program, error) {
	p, ok := f.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProgramRepo) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.Program, error) {
	var out []domain.Program
	for _, p := range f.programs {
		if p.CoachID == coachID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProgramRepo) ListPublished(_ context.Context) ([]domain.Program, error) {
	var out []domain.Program
	for _, p := range f.programs {
		if p.IsPublished {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProgramRepo) SetPublished(_ context.Context, id, coachID primitive.ObjectID, published bool) error {
	p, ok := f.programs[id]
	if !ok || p.CoachID != coachID {
		return repository.ErrNotFound
	}
	p.IsPublished = published
	return nil
}

func (f *fakeProgramRepo) AddSlot(_ context.Context, slot *domain.ProgramSlot) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	slot.ID = id
	f.slots = append(f.slots, *slot)
	return id, nil
}

func (f *fakeProgramRepo) GetSlotByID(_ context.Context, id primitive.ObjectID) (*domain.ProgramSlot, error) {
	for i := range f.slots {
		if f.slots[i].ID == id {
			cp := f.slots[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProgramRepo) GetSlotsByProgramID(_ context.Context, programID primitive.ObjectID) ([]domain.ProgramSlot, error) {
	var out []domain.ProgramSlot
	for _, s := range f.slots {
		if s.ProgramID == programID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeUserProgramRepo struct {
	byID        map[primitive.ObjectID]*domain.UserProgram
	deactivated int
}

func newFakeUserProgramRepo() *fakeUserProgramRepo {
	return &fakeUserProgramRepo{byID: make(map[primitive.ObjectID]*domain.UserProgram)}
}

func (f *fakeUserProgramRepo) Create(_ context.Context, up *domain.UserProgram) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *up
	cp.ID = id
	f.byID[id] = &cp
	return id, nil
}

func (f *fakeUserProgramRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.UserProgram, error) {
	up, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *up
	return &cp, nil
}

func (f *fakeUserProgramRepo) GetActiveByUserID(_ context.Context, userID primitive.ObjectID) (*domain.UserProgram, error) {
	for _, up := range f.byID {
		if up.UserID == userID && up.IsActive {
			cp := *up
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserProgramRepo) UpdatePointer(_ context.Context, id primitive.ObjectID, week, day int) error {
	up, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	up.CurrentWeek = week
	up.CurrentDay = day
	return nil
}

func (f *fakeUserProgramRepo) DeactivateAllForUser(_ context.Context, userID primitive.ObjectID) error {
	for _, up := range f.byID {
		if up.UserID == userID {
			up.IsActive = false
			f.deactivated++
		}
	}
	return nil
}

type fakeWorkoutLogRepo struct {
	logs map[primitive.ObjectID]*domain.WorkoutLog
}

func newFakeWorkoutLogRepo() *fakeWorkoutLogRepo {
	return &fakeWorkoutLogRepo{logs: make(map[primitive.ObjectID]*domain.WorkoutLog)}
}

func (f *fakeWorkoutLogRepo) Create(_ context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *log
	cp.ID = id
	f.logs[id] = &cp
	return id, nil
}

func (f *fakeWorkoutLogRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	l, ok := f.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeWorkoutLogRepo) GetByUserAndRange(_ context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutLog, error) {
	var out []domain.WorkoutLog
	for _, l := range f.logs {
		if l.UserID != userID {
			continue
		}
		if l.OccurredAt.Before(from) || !l.OccurredAt.Before(to) {
			continue
		}
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeWorkoutLogRepo) UpdateNotesAndRating(_ context.Context, id, userID primitive.ObjectID, notes string, rating *int) error {
	l, ok := f.logs[id]
	if !ok || l.UserID != userID {
		return repository.ErrNotFound
	}
	l.Notes = notes
	l.Rating = rating
	return nil
}

type fakeShareLinkRepo struct {
	links map[primitive.ObjectID]*domain.ShareLink
}

func newFakeShareLinkRepo() *fakeShareLinkRepo {
	return &fakeShareLinkRepo{links: make(map[primitive.ObjectID]*domain.ShareLink)}
}

func (f *fakeShareLinkRepo) Create(_ context.Context, link *domain.ShareLink) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *link
	cp.ID = id
	f.links[id] = &cp
	return id, nil
}

func (f *fakeShareLinkRepo) GetByToken(_ context.Context, token string) (*domain.ShareLink, error) {
	for _, l := range f.links {
		if l.Token == token {
			cp := *l
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeShareLinkRepo) DeleteByUser(_ context.Context, id, userID primitive.ObjectID) error {
	l, ok := f.links[id]
	if !ok || l.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.links, id)
	return nil
}
