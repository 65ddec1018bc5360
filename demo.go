package main

import (
	"github.com/google/uuid"
)

// demoEntities builds a small connected map, used by --demo to try
// the canvas without a server or existing file.
func demoEntities() []*Entity {
	ideas := &Entity{ID: uuid.NewString(), Kind: KindFolder, Title: "Ideas", Position: &Point{X: 0, Y: 0}}
	groceries := &Entity{ID: uuid.NewString(), Kind: KindNote, Title: "Groceries", Position: &Point{X: 450, Y: -150}, ColorTag: 4}
	trip := &Entity{ID: uuid.NewString(), Kind: KindNote, Title: "Trip planning", Position: &Point{X: 450, Y: 150}, ColorTag: 5}
	booked := &Entity{ID: uuid.NewString(), Kind: KindNote, Title: "Book flights", Position: &Point{X: 900, Y: 150}, CrossedOut: true}
	work := &Entity{ID: uuid.NewString(), Kind: KindFolder, Title: "Work", Position: &Point{X: -100, Y: 350}, ColorTag: 1}
	standup := &Entity{ID: uuid.NewString(), Kind: KindNote, Title: "Standup notes", Position: &Point{X: 350, Y: 450}}
	inbox := &Entity{ID: uuid.NewString(), Kind: KindNote, Title: "Inbox zero"}

	ideas.ConnectedTo = []string{groceries.ID, trip.ID}
	trip.ConnectedTo = []string{booked.ID}
	work.ConnectedTo = []string{standup.ID}

	return []*Entity{ideas, groceries, trip, booked, work, standup, inbox}
}

// seedDemoFile writes the demo map to path unless it already exists.
func seedDemoFile(path string) error {
	gw := newFileGateway(path, zerologNop())
	f, err := gw.load()
	if err != nil {
		return err
	}
	if len(f.Entities) > 0 {
		return nil
	}
	return gw.save(&mapFile{Entities: demoEntities()})
}
