package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskloom/todo-backend/internal/dto"
	"github.com/taskloom/todo-backend/internal/models"
	"github.com/taskloom/todo-backend/internal/validation"
)

var (
	// ErrTodoNotFound also covers malformed ids: a string that is not a UUID
	// can never name an existing todo, and collapsing the two keeps probes
	// from learning anything about the id space.
	ErrTodoNotFound = errors.New("the task with the given ID was not found")
	ErrNotOwner     = errors.New("you are not authorized to access this task")
)

type TodoService struct {
	db *gorm.DB
}

func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{db: db}
}

// List returns the owner's todos, optionally filtered by completion state.
func (s *TodoService) List(ownerID uuid.UUID, completed *bool) ([]models.Todo, error) {
	query := s.db.Where("user_id = ?", ownerID)
	if completed != nil {
		query = query.Where("is_completed = ?", *completed)
	}

	todos := make([]models.Todo, 0)
	if err := query.Order("created_at ASC").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (s *TodoService) Create(ownerID uuid.UUID, req dto.CreateTodoRequest) (*models.Todo, error) {
	task, detail, err := validation.TodoFields(req.Task, req.Detail)
	if err != nil {
		return nil, err
	}

	todo := models.Todo{
		ID:     uuid.New(),
		Task:   string(task),
		Detail: string(detail),
		UserID: ownerID,
	}
	if err := s.db.Create(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// Get loads a todo and enforces ownership. Existence is checked before
// ownership so a foreign id yields 403, not 404.
func (s *TodoService) Get(ownerID uuid.UUID, id string) (*models.Todo, error) {
	todoID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrTodoNotFound
	}

	var todo models.Todo
	if err := s.db.First(&todo, "id = ?", todoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	if todo.UserID != ownerID {
		return nil, ErrNotOwner
	}
	return &todo, nil
}

// Update replaces the task and detail fields in place.
func (s *TodoService) Update(ownerID uuid.UUID, id string, req dto.UpdateTodoRequest) (*models.Todo, error) {
	task, detail, err := validation.TodoFields(req.Task, req.Detail)
	if err != nil {
		return nil, err
	}

	todo, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	todo.Task = string(task)
	todo.Detail = string(detail)
	if err := s.db.Save(todo).Error; err != nil {
		return nil, err
	}
	return todo, nil
}

// ToggleCompletion flips IsCompleted. Applying it twice restores the original
// state.
func (s *TodoService) ToggleCompletion(ownerID uuid.UUID, id string) (*models.Todo, error) {
	todo, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	todo.IsCompleted = !todo.IsCompleted
	if err := s.db.Save(todo).Error; err != nil {
		return nil, err
	}
	return todo, nil
}
