// Package message defines the JSON payload shapes that ride inside the
// protocol-level string fields of the status and login exchanges: the
// server-list ping response (status.StatusResponse.Response) and the
// chat-component disconnect reason (login.Disconnect.Reason). Every other
// field on the wire is a statically typed packet field decoded by
// mcproto/buf; these are the only documents that nest a second codec
// inside a string.
package message

// ChatComponent is the minimal 1.7.2 chat-component JSON shape: a flat
// string message with no formatting, click events, or nested "extra" runs.
// Real clients tolerate this subset fine for disconnect reasons and MOTDs.
type ChatComponent struct {
	Text string `json:"text"`
}

// StatusVersion is the "version" object inside a StatusResponse payload.
type StatusVersion struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

// StatusPlayers is the "players" object inside a StatusResponse payload.
type StatusPlayers struct {
	Max    int `json:"max"`
	Online int `json:"online"`
}

// StatusResponse is the full server-list ping JSON document encoded into
// status.StatusResponse.Response.
type StatusResponse struct {
	Version     StatusVersion `json:"version"`
	Players     StatusPlayers `json:"players"`
	Description ChatComponent `json:"description"`
}
