package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Catalog entry icons
const (
	IconFolder   = "\uf07b"     // nf-fa-folder
	IconSong     = "\U000F075A" // nf-md-music
	IconPlaylist = "\U000F0CB8" // nf-md-playlist_music
	IconMissing  = "\uf071"     // nf-fa-warning
	IconBack     = "\uf062"     // nf-fa-arrow_up
)
