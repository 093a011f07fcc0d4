package router

import (
	"net/http"
	"sort"

	"catalog-api/internal/http/handlers"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type Store interface {
	handlers.Store
	handlers.Pinger
}

func Setup(store Store, logger zerolog.Logger) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(store)
	planetHandler := handlers.NewPlanetHandler(store)
	characterHandler := handlers.NewCharacterHandler(store, store)
	favoriteHandler := handlers.NewFavoriteHandler(store)
	postHandler := handlers.NewPostHandler(store, store)
	healthHandler := handlers.NewHealthHandler(store)

	r.HandleFunc("/", routeIndex(r)).Methods("GET")
	r.HandleFunc("/healthz", healthHandler.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/users", userHandler.CreateUser).Methods("POST")
	api.HandleFunc("/users", userHandler.GetUsers).Methods("GET")
	api.HandleFunc("/users/{username}", userHandler.GetUser).Methods("GET")

	api.HandleFunc("/planets", planetHandler.CreatePlanet).Methods("POST")
	api.HandleFunc("/planets", planetHandler.GetPlanets).Methods("GET")
	api.HandleFunc("/planets/{name}", planetHandler.GetPlanet).Methods("GET")

	api.HandleFunc("/people", characterHandler.CreateCharacter).Methods("POST")
	api.HandleFunc("/people", characterHandler.GetCharacters).Methods("GET")
	api.HandleFunc("/people/{name}", characterHandler.GetCharacter).Methods("GET")

	api.HandleFunc("/users/{user_id}/favorite/planet/{planet_id}", favoriteHandler.AddPlanet).Methods("POST")
	api.HandleFunc("/users/{user_id}/favorite/planet/{planet_id}", favoriteHandler.RemovePlanet).Methods("DELETE")
	api.HandleFunc("/users/{user_id}/favorite/people/{character_id}", favoriteHandler.AddCharacter).Methods("POST")
	api.HandleFunc("/users/{user_id}/favorite/people/{character_id}", favoriteHandler.RemoveCharacter).Methods("DELETE")

	api.HandleFunc("/posts/{user_id}", postHandler.GetPosts).Methods("GET")
	api.HandleFunc("/posts/{user_id}", postHandler.CreatePost).Methods("POST")

	fallbackMethodNotAllowed(api,
		"/users",
		"/users/{username}",
		"/planets",
		"/planets/{name}",
		"/people",
		"/people/{name}",
		"/users/{user_id}/favorite/planet/{planet_id}",
		"/users/{user_id}/favorite/people/{character_id}",
		"/posts/{user_id}",
	)

	return chain(r, logger)
}

// fallbackMethodNotAllowed registers a method-less route for each path, after
// the method routes. mux forgets a method mismatch once a later route on the
// same path is tried, so a wrong method on a shared path would otherwise 404.
func fallbackMethodNotAllowed(r *mux.Router, paths ...string) {
	for _, path := range paths {
		r.HandleFunc(path, methodNotAllowed)
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "Resource not found."})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed."})
}

type routeInfo struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods"`
}

// routeIndex lists every registered path with its methods, sorted by path.
// The walk happens per request so routes added after Setup still show up.
func routeIndex(r *mux.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		byPath := map[string]*routeInfo{}
		err := r.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
			path, err := route.GetPathTemplate()
			if err != nil {
				return nil
			}
			methods, err := route.GetMethods()
			if err != nil {
				return nil
			}
			info, ok := byPath[path]
			if !ok {
				info = &routeInfo{Path: path}
				byPath[path] = info
			}
			info.Methods = append(info.Methods, methods...)
			return nil
		})
		if err != nil {
			handlers.WriteError(w, req, err)
			return
		}

		routes := make([]routeInfo, 0, len(byPath))
		for _, info := range byPath {
			sort.Strings(info.Methods)
			routes = append(routes, *info)
		}
		sort.Slice(routes, func(i, j int) bool { return routes[i].Path < routes[j].Path })

		handlers.WriteJSON(w, http.StatusOK, map[string]any{"routes": routes})
	}
}
