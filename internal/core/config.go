package core

// RuntimeConfig holds the platform-level settings the game is started with.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driven by the platform (default 60)
	Seed     int64 // RNG seed for obstacle generation, 0 = time based
}
