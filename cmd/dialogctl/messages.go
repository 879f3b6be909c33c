package main

// openDialogMsg asks the model to open the named catalog dialog.
type openDialogMsg struct {
	Name string
}

// urlOpenedMsg reports the result of opening a button link.
type urlOpenedMsg struct {
	URL string
	Err error
}
