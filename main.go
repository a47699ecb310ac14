package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/dhwiwwx/tracker-api/database"
	"github.com/dhwiwwx/tracker-api/handlers"
	"github.com/dhwiwwx/tracker-api/middleware"
	"github.com/dhwiwwx/tracker-api/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
}

func main() {
	utils.InitLogger()

	r := mux.NewRouter()

	r.Use(middleware.Cors())

	db := database.ConnectDB()
	fmt.Println("DbName:", db.Name())

	// auth
	r.HandleFunc("/register", handlers.RegisterUser).Methods("POST")
	r.HandleFunc("/login", handlers.LoginUser).Methods("POST")
	r.HandleFunc("/profile", middleware.CheckAuth(handlers.Profile)).Methods("GET")

	// projects
	r.HandleFunc("/projects", middleware.CheckAuth(handlers.ListProjects)).Methods("GET")
	r.HandleFunc("/projects", middleware.CheckAuth(handlers.CreateProject)).Methods("POST")
	r.HandleFunc("/projects/{id}", middleware.CheckAuth(handlers.GetProject)).Methods("GET")
	r.HandleFunc("/projects/{id}", middleware.CheckAuth(handlers.UpdateProject)).Methods("PUT")
	r.HandleFunc("/projects/{id}", middleware.CheckAuth(handlers.DeleteProject)).Methods("DELETE")
	r.HandleFunc("/projects/{id}/members", middleware.CheckAuth(handlers.AddMember)).Methods("POST")

	// issues
	r.HandleFunc("/projects/{id}/issues", middleware.CheckAuth(handlers.ListIssues)).Methods("GET")
	r.HandleFunc("/projects/{id}/issues", middleware.CheckAuth(handlers.CreateIssue)).Methods("POST")
	r.HandleFunc("/projects/{id}/dashboard", middleware.CheckAuth(handlers.GetDashboard)).Methods("GET")
	r.HandleFunc("/projects/{id}/stream", middleware.CheckAuth(handlers.StreamIssues)).Methods("GET")
	r.HandleFunc("/issues/{id}", middleware.CheckAuth(handlers.GetIssue)).Methods("GET")
	r.HandleFunc("/issues/{id}", middleware.CheckAuth(handlers.UpdateIssue)).Methods("PUT")
	r.HandleFunc("/issues/{id}", middleware.CheckAuth(handlers.DeleteIssue)).Methods("DELETE")
	r.HandleFunc("/issues/{id}/status", middleware.CheckAuth(handlers.UpdateIssueStatus)).Methods("POST")
	r.HandleFunc("/issues/{id}/comments", middleware.CheckAuth(handlers.AddComment)).Methods("POST")

	// activity feed
	r.HandleFunc("/activity", middleware.CheckAuth(handlers.ListActivity)).Methods("GET")
	r.HandleFunc("/activity/unread", middleware.CheckAuth(handlers.UnreadActivityCount)).Methods("GET")
	r.HandleFunc("/activity/open", middleware.CheckAuth(handlers.OpenActivityFeed)).Methods("POST")
	r.HandleFunc("/activity/close", middleware.CheckAuth(handlers.CloseActivityFeed)).Methods("POST")

	// preferences
	r.HandleFunc("/me/preferences/view", middleware.CheckAuth(handlers.GetViewPref)).Methods("GET")
	r.HandleFunc("/me/preferences/view", middleware.CheckAuth(handlers.SetViewPref)).Methods("PUT")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Println("Server is running at http://localhost:" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
