package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/atelierhub/atelier-backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Post    *models.Post `json:"post,omitempty"`
}

// Blog and project handlers share the same logic against different
// collections; only the Cloudinary folder differs.

func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request)     { h.listPosts(w, r, "blogs") }
func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request)   { h.createPost(w, r, "blogs") }
func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request)   { h.updatePost(w, r, "blogs") }
func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request)   { h.deletePost(w, r, "blogs") }
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) { h.listPosts(w, r, "projects") }
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	h.createPost(w, r, "projects")
}
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	h.updatePost(w, r, "projects")
}
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	h.deletePost(w, r, "projects")
}

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request, collection string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.DB.Collection(collection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// createPost accepts multipart form data with title, description, and an
// optional image file that goes to Cloudinary before the document is written.
func (h *Handler) createPost(w http.ResponseWriter, r *http.Request, collection string) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	if title == "" || description == "" {
		writeError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	imageURL, err := h.uploadedImage(r, collection)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now()
	post := models.Post{
		CreatedAt:   now,
		UpdatedAt:   now,
		Title:       title,
		Description: description,
		Image:       imageURL,
	}

	res, err := h.DB.Collection(collection).InsertOne(ctx, post)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	post.ID = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, PostResponse{Success: true, Message: "Created", Post: &post})
}

// updatePost replaces title/description and, when a new image file is sent,
// the image; otherwise the existing image URL stays.
func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request, collection string) {
	objectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Post
	err = h.DB.Collection(collection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if title := r.FormValue("title"); title != "" {
		existing.Title = title
	}
	if description := r.FormValue("description"); description != "" {
		existing.Description = description
	}
	imageURL, err := h.uploadedImage(r, collection)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if imageURL != "" {
		existing.Image = imageURL
	}
	existing.UpdatedAt = time.Now()

	_, err = h.DB.Collection(collection).UpdateByID(ctx, objectID, bson.M{"$set": bson.M{
		"title":       existing.Title,
		"description": existing.Description,
		"image":       existing.Image,
		"updated_at":  existing.UpdatedAt,
	}})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, PostResponse{Success: true, Message: "Updated", Post: &existing})
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request, collection string) {
	objectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.DB.Collection(collection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if res.DeletedCount == 0 {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	writeJSON(w, http.StatusOK, PostResponse{Success: true, Message: "Deleted"})
}

// uploadedImage uploads the "image" form file when one was sent. Returns ""
// when the form has no image; any other form error is the caller's problem.
func (h *Handler) uploadedImage(r *http.Request, folder string) (string, error) {
	_, fileHeader, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if h.Uploads == nil {
		return "", errImageUploadUnavailable
	}

	return h.Uploads.UploadFileFromHeader(r.Context(), fileHeader, folder)
}

// --- keyed page content blocks ---

type SaveContentRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.DB.Collection("contents").Find(ctx, bson.M{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cursor.Close(ctx)

	contents := []models.Content{}
	if err := cursor.All(ctx, &contents); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, contents)
}

func (h *Handler) SaveContent(w http.ResponseWriter, r *http.Request) {
	var req SaveContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := h.DB.Collection("contents").UpdateOne(ctx,
		bson.M{"key": req.Key},
		bson.M{"$set": bson.M{
			"value":      req.Value,
			"updated_at": time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "key": req.Key})
}
