package ui

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Tomlord1122/todo-app/internal/client"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Todo List</title>
<style>
  body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
  li { list-style: none; margin: .4rem 0; }
  li.completed .title { text-decoration: line-through; color: #888; }
  form.inline { display: inline; }
</style>
</head>
<body>
<h1>Todo List</h1>
<form method="post" action="/tasks" class="add-todo">
  <input type="text" name="title" placeholder="New task" value="{{.Draft.Title}}">
  <input type="text" name="description" placeholder="Description" value="{{.Draft.Description}}">
  <button type="submit">Add</button>
</form>
<ul>
{{- range .Tasks}}
  <li class="{{if .Completed}}completed{{end}}">
    <form method="post" action="/tasks/{{.ID}}/toggle" class="inline">
      <button type="submit">{{if .Completed}}Mark incomplete{{else}}Mark complete{{end}}</button>
    </form>
    <span class="title">{{.Title}}</span>{{if .Description}} - <span class="description">{{.Description}}</span>{{end}}
    <form method="post" action="/tasks/{{.ID}}/delete" class="inline">
      <button type="submit">Delete</button>
    </form>
  </li>
{{- end}}
</ul>
</body>
</html>
`))

// Draft is the content of the add form. It belongs to the request that
// submitted it, never to the shared board.
type Draft struct {
	Title       string
	Description string
}

type pageData struct {
	Tasks []client.Task
	Draft Draft
}

// NewHandler serves the board. Successful actions redirect back to the list.
// A rejected add renders the list right away with the submitted values kept
// in the form; other failed calls simply show the unchanged board.
func NewHandler(board *Board) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("reload") == "1" {
			_ = board.Load(r.Context())
		}
		render(w, http.StatusOK, pageData{Tasks: board.Tasks()})
	})

	r.Post("/tasks", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}
		draft := Draft{Title: r.PostForm.Get("title"), Description: r.PostForm.Get("description")}
		if err := board.Add(r.Context(), draft.Title, draft.Description); err != nil {
			code := http.StatusBadGateway
			if errors.Is(err, ErrEmptyTitle) {
				code = http.StatusUnprocessableEntity
			}
			render(w, code, pageData{Tasks: board.Tasks(), Draft: draft})
			return
		}
		backToList(w, r)
	})

	r.Post("/tasks/{id}/toggle", withID(func(w http.ResponseWriter, r *http.Request, id uint) {
		_ = board.Toggle(r.Context(), id)
		backToList(w, r)
	}))

	r.Post("/tasks/{id}/delete", withID(func(w http.ResponseWriter, r *http.Request, id uint) {
		_ = board.Delete(r.Context(), id)
		backToList(w, r)
	}))

	return r
}

func withID(next func(http.ResponseWriter, *http.Request, uint)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, strconv.IntSize)
		if err != nil {
			http.Error(w, "Invalid task ID provided", http.StatusBadRequest)
			return
		}
		next(w, r, uint(id))
	}
}

func render(w http.ResponseWriter, code int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := page.Execute(w, data); err != nil {
		log.Printf("Error rendering page: %v", err)
	}
}

func backToList(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
