// Package twodo is the composition root of the twodo note tracker.
//
// A workspace holds an ordered list of notes (title, content, completion flag,
// creation time and a due date). The list lives in memory inside a
// core.Service and is mirrored to a single key-value slot after every change;
// it is read back once when the service is opened.
//
// The default store writes the slot as a JSON file under ".twodo/" in the
// workspace. An in-process store (memory) and a shared one (redis) are also
// available.
//
// Usage:
//
//	svc, err := twodo.New(".", twodo.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	note, err := svc.Add(ctx, "Buy milk", "2 liters", "2024-03-12")
//
//	view := svc.View(twodo.Query{Filter: "milk", Category: core.CategoryAll})
//	fmt.Println(view.Percentages.Values)
package twodo
