package taskstub

import (
	"net/http"
	"sort"
	"sync"
	"time"
)

type Task struct {
	Queue        string
	Name         string
	URL          string
	Body         []byte
	Headers      map[string]string
	ScheduleTime time.Time
	CreateTime   time.Time
}

type TaskStorage struct {
	mu         sync.RWMutex
	tasks      map[string]*Task // name -> task
	failing    int
	failStatus int
	creates    int
	deletes    int
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		tasks: make(map[string]*Task),
	}
}

func (s *TaskStorage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make(map[string]*Task)
	s.failing = 0
	s.failStatus = 0
	s.creates = 0
	s.deletes = 0
}

// FailNext makes the next n write requests answer 503.
func (s *TaskStorage) FailNext(n int) {
	s.FailNextWithStatus(n, http.StatusServiceUnavailable)
}

// FailNextWithStatus makes the next n write requests answer status.
func (s *TaskStorage) FailNextWithStatus(n, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = n
	s.failStatus = status
}

// consumeFailure returns the injected status for this request, or 0.
func (s *TaskStorage) consumeFailure() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing > 0 {
		s.failing--
		return s.failStatus
	}
	return 0
}

// Add stores task unless one with the same name exists.
func (s *TaskStorage) Add(task *Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if _, ok := s.tasks[task.Name]; ok {
		return false
	}
	s.tasks[task.Name] = task
	return true
}

func (s *TaskStorage) CreateCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creates
}

func (s *TaskStorage) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	if _, ok := s.tasks[name]; !ok {
		return false
	}
	delete(s.tasks, name)
	return true
}

func (s *TaskStorage) Get(name string) (*Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[name]
	return t, ok
}

func (s *TaskStorage) DeleteCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deletes
}

func (s *TaskStorage) List() []*Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ScheduleTime.Before(tasks[j].ScheduleTime)
	})
	return tasks
}

func (s *TaskStorage) countCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
}
