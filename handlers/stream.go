package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dhwiwwx/tracker-api/database"
	"github.com/dhwiwwx/tracker-api/utils"
)

// StreamIssues pushes the project's issue changes to the client as
// server-sent events, backed by a change stream on the issues
// collection. The client dropping the connection cancels the request
// context, which tears the stream down; that is the only cancellation
// path.
func StreamIssues(w http.ResponseWriter, r *http.Request) {
	pid, ok := projectID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid project id", "")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "Streaming unsupported", "")
		return
	}

	ctx := r.Context()

	stream, err := database.Watch(ctx, "issues", bson.M{"fullDocument.projectId": pid})
	if err != nil {
		utils.Logger.Warn("Failed to open issue change stream")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error subscribing to issues", "")
		return
	}
	defer stream.Close(ctx)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for stream.Next(ctx) {
		var event bson.M
		if err := stream.Decode(&event); err != nil {
			utils.Logger.Warn("Failed to decode change event")
			continue
		}

		payload, err := json.Marshal(map[string]interface{}{
			"operation": event["operationType"],
			"document":  event["fullDocument"],
		})
		if err != nil {
			continue
		}

		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}
}
