package services

import (
	"context"
	"io"

	"github.com/openhire/apiserver/internal/events"
	"github.com/openhire/apiserver/internal/store"
	"github.com/openhire/apiserver/types"
)

type fakeUserRepo struct {
	users map[int]types.User
}

func newFakeUserRepo(users ...types.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int]types.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) List(ctx context.Context) ([]types.User, error) {
	users := make([]types.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	u, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (types.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	user.ID = len(r.users) + 1
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user types.User) (types.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeJobRepo struct {
	jobs    map[int]types.Job
	nextID  int
	lastQ   types.JobQuery
	listOut []types.Job
	total   int
}

func newFakeJobRepo(jobs ...types.Job) *fakeJobRepo {
	r := &fakeJobRepo{jobs: make(map[int]types.Job), nextID: 1}
	for _, j := range jobs {
		r.jobs[j.ID] = j
		if j.ID >= r.nextID {
			r.nextID = j.ID + 1
		}
	}
	return r
}

func (r *fakeJobRepo) List(ctx context.Context, q types.JobQuery) ([]types.Job, int, error) {
	r.lastQ = q
	return r.listOut, r.total, nil
}

func (r *fakeJobRepo) Get(ctx context.Context, id int) (types.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return types.Job{}, store.ErrNotFound
	}
	return j, nil
}

func (r *fakeJobRepo) Create(ctx context.Context, job types.Job) (types.Job, error) {
	job.ID = r.nextID
	r.nextID++
	r.jobs[job.ID] = job
	return job, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, job types.Job) (types.Job, error) {
	if _, ok := r.jobs[job.ID]; !ok {
		return types.Job{}, store.ErrNotFound
	}
	r.jobs[job.ID] = job
	return job, nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.jobs[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

type fakeApplicationRepo struct {
	apps      map[int]types.Application
	nextID    int
	createErr error
	deleteErr error
}

func newFakeApplicationRepo(apps ...types.Application) *fakeApplicationRepo {
	r := &fakeApplicationRepo{apps: make(map[int]types.Application), nextID: 1}
	for _, a := range apps {
		r.apps[a.ID] = a
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
	}
	return r
}

func (r *fakeApplicationRepo) Get(ctx context.Context, id int) (types.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return types.Application{}, store.ErrNotFound
	}
	return a, nil
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app types.Application) (types.Application, error) {
	if r.createErr != nil {
		return types.Application{}, r.createErr
	}
	app.ID = r.nextID
	r.nextID++
	r.apps[app.ID] = app
	return app, nil
}

func (r *fakeApplicationRepo) Update(ctx context.Context, app types.Application) (types.Application, error) {
	if _, ok := r.apps[app.ID]; !ok {
		return types.Application{}, store.ErrNotFound
	}
	r.apps[app.ID] = app
	return app, nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id int) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.apps[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.apps, id)
	return nil
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID int) ([]types.Application, error) {
	var out []types.Application
	for _, a := range r.apps {
		if a.ApplicantID == applicantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByEmployer(ctx context.Context, employerID int) ([]types.Application, error) {
	var out []types.Application
	for _, a := range r.apps {
		if a.Job != nil && a.Job.EmployerID == employerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID int) ([]types.Application, error) {
	var out []types.Application
	for _, a := range r.apps {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListAll(ctx context.Context) ([]types.Application, error) {
	out := make([]types.Application, 0, len(r.apps))
	for _, a := range r.apps {
		out = append(out, a)
	}
	return out, nil
}

type fakeFileStore struct {
	keys []string
	err  error
}

func (f *fakeFileStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	return nil
}

type fakePublisher struct {
	events []events.ApplicationSubmitted
}

func (p *fakePublisher) ApplicationSubmitted(ctx context.Context, event events.ApplicationSubmitted) error {
	p.events = append(p.events, event)
	return nil
}
