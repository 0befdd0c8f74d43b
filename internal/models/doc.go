// Package models defines the domain models for agenda.
//
// # Person
//
// Person is the only persisted entity: a name and a phone number registered
// from the single screen of the app. The phone is stored already masked, in the
// form the user saw it (see package phonemask).
//
// # Identity
//
// A person is identified by ID once the store has assigned one. Before that,
// name and phone together are the natural key: upserting a pair that already
// exists touches that row instead of adding a second one, while two people
// with the same name and different phones are kept apart.
package models
