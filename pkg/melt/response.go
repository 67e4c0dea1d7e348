package melt

import "net/http"

// Response lets a handler choose the status code of a successful result.
//
// Example usage:
//
//	func (c *UserController) CreateUser(body string) (*melt.Response, error) {
//	    // ... create user logic ...
//	    return melt.Created("created"), nil
//	}
type Response struct {
	// StatusCode is the HTTP status code to return
	StatusCode int

	// Body is rendered as text
	Body any
}

// NewResponse creates a new Response with the specified status code and body
func NewResponse(statusCode int, body any) *Response {
	return &Response{
		StatusCode: statusCode,
		Body:       body,
	}
}

// OK creates a 200 OK response with the given body
func OK(body any) *Response {
	return NewResponse(http.StatusOK, body)
}

// Created creates a 201 Created response with the given body
func Created(body any) *Response {
	return NewResponse(http.StatusCreated, body)
}

// NoContent creates a 204 No Content response
func NoContent() *Response {
	return NewResponse(http.StatusNoContent, nil)
}
