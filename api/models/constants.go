package models

// Alphabet feeds nanoid when minting song and member IDs.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

type ErrorResponse struct {
	Error string `json:"error"`
}
