package tasks

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexgen/taskbuddy/internal/domain"
	"github.com/nexgen/taskbuddy/internal/infrastructure/events"
	"github.com/nexgen/taskbuddy/internal/infrastructure/json"
	"github.com/nexgen/taskbuddy/internal/infrastructure/security"
	"github.com/nexgen/taskbuddy/internal/infrastructure/ws"
	"github.com/nexgen/taskbuddy/internal/presentation/utils"
)

type Handler struct {
	taskRepository domain.TaskRepository
	roomRepository domain.RoomRepository
	taskRelay      *ws.TaskRelay
	taskPublisher  *events.TaskPublisher
}

func NewHandler(
	taskRepository domain.TaskRepository,
	roomRepository domain.RoomRepository,
	taskRelay *ws.TaskRelay,
	taskPublisher *events.TaskPublisher,
) *Handler {
	return &Handler{
		taskRepository: taskRepository,
		roomRepository: roomRepository,
		taskRelay:      taskRelay,
		taskPublisher:  taskPublisher,
	}
}

// ListTasksHandler godoc
// @Summary      List tasks
// @Description  Returns tasks for a room, or the current user's personal tasks when roomId is "personal" or absent
// @Tags         tasks
// @Produce      json
// @Param        roomId query string false "Room ID or personal"
// @Success      200 {array} taskResponse "Tasks"
// @Failure      401 {object} map[string]interface{} "Unauthorized - missing authentication or not a member"
// @Failure      404 {object} map[string]interface{} "Room not found"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Security     SessionAuth
// @Router       /tasks [get]
func (h *Handler) ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	claims := utils.SessionFromContext(r.Context())
	if claims == nil {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return
	}

	roomID := r.URL.Query().Get("roomId")

	var (
		tasks []domain.Task
		err   error
	)

	if roomID == "" || roomID == domain.PersonalRoomID {
		tasks, err = h.taskRepository.GetPersonal(r.Context(), claims.Subject)
	} else {
		if !h.requireMembership(w, r, roomID, claims.Subject) {
			return
		}
		tasks, err = h.taskRepository.GetByRoom(r.Context(), roomID)
	}

	if err != nil {
		log.Printf("Repository error listing tasks: %v", err)
		json.WriteInternalError(w, err)
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, mapTask(&tasks[i]))
	}

	json.Write(w, http.StatusOK, resp)
}

// CreateTaskHandler godoc
// @Summary      Create a task
// @Description  Creates a task in a room or on the personal board, then notifies connected clients
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        request body taskRequest true "Task fields"
// @Success      201 {object} taskResponse "Task created"
// @Failure      400 {object} map[string]interface{} "Bad request - validation error"
// @Failure      401 {object} map[string]interface{} "Unauthorized - missing authentication or not a member"
// @Failure      404 {object} map[string]interface{} "Room not found"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Security     SessionAuth
// @Router       /tasks [post]
func (h *Handler) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	claims := utils.SessionFromContext(r.Context())
	if claims == nil {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return
	}

	if req.RoomID != "" && req.RoomID != domain.PersonalRoomID {
		if !h.requireMembership(w, r, req.RoomID, claims.Subject) {
			return
		}
	}

	task, err := domain.NewTask(req.Title, req.Description, req.Priority, req.Status, req.RoomID, claims.Subject, req.Tags, req.DueDate, req.Order)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := h.taskRepository.Create(r.Context(), task); err != nil {
		log.Printf("Repository error creating task: %v", err)
		json.WriteInternalError(w, err)
		return
	}

	h.taskRelay.TaskCreated(task)

	if err := h.taskPublisher.PublishTaskCreated(r.Context(), *task); err != nil {
		log.Printf("Error publishing task created: %v", err)
	}

	json.Write(w, http.StatusCreated, mapTask(task))
}

// UpdateTaskHandler godoc
// @Summary      Update a task
// @Description  Applies field changes to a task, then notifies connected clients
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        taskId path string true "Task ID"
// @Param        request body taskRequest true "Task fields"
// @Success      200 {object} taskResponse "Task updated"
// @Failure      400 {object} map[string]interface{} "Bad request - validation error"
// @Failure      401 {object} map[string]interface{} "Unauthorized - missing authentication or not allowed"
// @Failure      404 {object} map[string]interface{} "Task not found"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Security     SessionAuth
// @Router       /tasks/{taskId} [put]
func (h *Handler) UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	task, claims, ok := h.loadTask(w, r)
	if !ok {
		return
	}

	var req taskRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if !h.canTouch(r.Context(), task, claims.Subject) {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "You cannot modify this task")
		return
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	task.Description = req.Description
	if req.Priority != "" {
		if err := domain.ValidatePriority(req.Priority); err != nil {
			json.WriteValidationError(w, err)
			return
		}
		task.Priority = req.Priority
	}
	if req.Status != "" {
		if err := domain.ValidateStatus(req.Status); err != nil {
			json.WriteValidationError(w, err)
			return
		}
		task.Status = req.Status
	}
	if req.Tags != nil {
		task.Tags = req.Tags
	}
	task.DueDate = req.DueDate
	task.Order = req.Order
	task.Touch()

	if err := h.taskRepository.Update(r.Context(), task); err != nil {
		log.Printf("Repository error updating task: %v", err)
		json.WriteInternalError(w, err)
		return
	}

	h.taskRelay.TaskUpdated(task)

	if err := h.taskPublisher.PublishTaskUpdated(r.Context(), *task); err != nil {
		log.Printf("Error publishing task updated: %v", err)
	}

	json.Write(w, http.StatusOK, mapTask(task))
}

// DeleteTaskHandler godoc
// @Summary      Delete a task
// @Description  Removes a task, then notifies connected clients with its id and room
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID"
// @Success      204 "Task deleted"
// @Failure      401 {object} map[string]interface{} "Unauthorized - missing authentication or not allowed"
// @Failure      404 {object} map[string]interface{} "Task not found"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Security     SessionAuth
// @Router       /tasks/{taskId} [delete]
func (h *Handler) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	task, claims, ok := h.loadTask(w, r)
	if !ok {
		return
	}

	if !h.canTouch(r.Context(), task, claims.Subject) {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "You cannot delete this task")
		return
	}

	if err := h.taskRepository.Delete(r.Context(), task.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			json.WriteError(w, http.StatusNotFound, err, "Task not found")
		default:
			log.Printf("Repository error deleting task: %v", err)
			json.WriteInternalError(w, err)
		}
		return
	}

	h.taskRelay.TaskDeleted(task.ID, task.BroadcastRoomID())

	if err := h.taskPublisher.PublishTaskDeleted(r.Context(), *task); err != nil {
		log.Printf("Error publishing task deleted: %v", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) loadTask(w http.ResponseWriter, r *http.Request) (*domain.Task, *security.SessionClaims, bool) {
	taskID := chi.URLParam(r, "taskId")
	if taskID == "" {
		json.WriteValidationError(w, errors.New("task ID is missing"))
		return nil, nil, false
	}

	claims := utils.SessionFromContext(r.Context())
	if claims == nil {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return nil, nil, false
	}

	task, err := h.taskRepository.GetByID(r.Context(), taskID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			json.WriteError(w, http.StatusNotFound, err, "Task not found")
		default:
			log.Printf("Repository error fetching task: %v", err)
			json.WriteInternalError(w, err)
		}
		return nil, nil, false
	}

	return task, claims, true
}

// canTouch allows the task owner always, and any room member for shared tasks.
func (h *Handler) canTouch(ctx context.Context, task *domain.Task, userID string) bool {
	if task.OwnerID == userID {
		return true
	}
	if task.IsPersonal() {
		return false
	}

	room, err := h.roomRepository.GetByID(ctx, task.RoomID)
	if err != nil {
		return false
	}
	return room.IsMember(userID)
}

func (h *Handler) requireMembership(w http.ResponseWriter, r *http.Request, roomID, userID string) bool {
	room, err := h.roomRepository.GetByID(r.Context(), roomID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteError(w, http.StatusNotFound, err, "Room not found")
		default:
			log.Printf("Repository error fetching room: %v", err)
			json.WriteInternalError(w, err)
		}
		return false
	}

	if !room.IsMember(userID) {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "You are not a member")
		return false
	}

	return true
}
