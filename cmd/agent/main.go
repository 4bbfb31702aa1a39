// Command agent chats with a hosted model that can call the demo tools.
package main

func main() {
	Execute()
}
