// Command arenactl replays allocation traces against a first-fit arena and
// reports the resulting block layout and statistics.
package main

func main() {
	execute()
}
