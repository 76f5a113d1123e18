package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"simplechat/internal/pkg/httputils"
	"simplechat/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users", h.getAll).Methods("GET", "OPTIONS")
	router.HandleFunc("/users/{id:[0-9]+}", h.getByID).Methods("GET", "OPTIONS")
	router.HandleFunc("/users", h.create).Methods("POST", "OPTIONS")
	router.HandleFunc("/users", h.update).Methods("PUT", "OPTIONS")
	router.HandleFunc("/users/{id:[0-9]+}", h.delete).Methods("DELETE", "OPTIONS")
}

// @Summary List users
// @Description Get all users
// @ID get-users
// @Produce json
// @Success 200 {object} []model.UserDTO
// @Failure 404 {object} httputils.ErrorResponse
// @Router /users [get]
func (h *UserHandler) getAll(w http.ResponseWriter, r *http.Request) {
	users := h.userService.GetAll(r.Context())
	if users == nil {
		httputils.ResponseError(w, http.StatusNotFound, "No users found")
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, users)
}

// @Summary Get user
// @Description Get user by id
// @ID get-user
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.UserDTO
// @Failure 404 {object} httputils.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Failed to parse user ID")
		return
	}

	user, err := h.userService.GetByID(r.Context(), uint(id))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, user)
}

type createUserRequest struct {
	UserName string `json:"userName"`
}

// @Summary Create user
// @Description Create a new user
// @ID create-user
// @Accept json
// @Produce json
// @Param userData body createUserRequest true "User Data"
// @Success 201 {object} model.UserDTO
// @Failure 400 {object} httputils.ErrorResponse
// @Router /users [post]
func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var request createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := h.userService.Create(r.Context(), request.UserName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusCreated, user)
}

type updateUserRequest struct {
	ID       uint   `json:"id"`
	UserName string `json:"userName"`
}

// @Summary Update user
// @Description Rename an existing user
// @ID update-user
// @Accept json
// @Param userData body updateUserRequest true "User Data"
// @Success 204
// @Failure 400 {object} httputils.ErrorResponse
// @Router /users [put]
func (h *UserHandler) update(w http.ResponseWriter, r *http.Request) {
	var request updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.userService.Update(r.Context(), request.ID, request.UserName); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Delete user
// @Description Delete a user who owns no chats
// @ID delete-user
// @Param id path int true "User ID"
// @Success 204
// @Failure 400 {object} httputils.ErrorResponse
// @Failure 404 {object} httputils.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Failed to parse user ID")
		return
	}

	if err := h.userService.Delete(r.Context(), uint(id)); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
