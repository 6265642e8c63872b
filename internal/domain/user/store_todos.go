package user

import (
	"context"

	"github.com/google/uuid"
)

// Todo edits are a read-modify-write over one user's embedded list; the
// per-user lock keeps concurrent edits from losing updates.

func (s *Store) AddTodo(ctx context.Context, userID, text string) error {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	u.Todos = append(u.Todos, TodoItem{ID: uuid.NewString(), Todo: text})
	return s.saveTodos(ctx, userID, u.Todos)
}

func (s *Store) UpdateTodo(ctx context.Context, userID, todoID, text string) error {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	for i := range u.Todos {
		if u.Todos[i].ID == todoID {
			u.Todos[i].Todo = text
			return s.saveTodos(ctx, userID, u.Todos)
		}
	}
	return ErrTodoNotFound
}

func (s *Store) RemoveTodo(ctx context.Context, userID, todoID string) error {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	for i := range u.Todos {
		if u.Todos[i].ID == todoID {
			u.Todos = append(u.Todos[:i], u.Todos[i+1:]...)
			return s.saveTodos(ctx, userID, u.Todos)
		}
	}
	return ErrTodoNotFound
}

func (s *Store) saveTodos(ctx context.Context, userID string, todos []TodoItem) error {
	_, err := s.DB.Exec(ctx, `UPDATE users SET todos = $1, updated_at = now() WHERE id = $2`, emptyTodosIfNil(todos), userID)
	return err
}
