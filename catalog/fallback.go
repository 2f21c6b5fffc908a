package catalog

// Fallback returns the bundled dataset served whenever the store is
// unreachable or empty. Callers get a fresh copy each time so pending edits
// never leak between sessions.
func Fallback() []Artist {
	artists := make([]Artist, len(fallbackArtists))
	copy(artists, fallbackArtists)
	for i := range artists {
		releases := make([]Release, len(artists[i].Releases))
		copy(releases, artists[i].Releases)
		for j := range releases {
			tracks := make([]Track, len(releases[j].Tracks))
			copy(tracks, releases[j].Tracks)
			releases[j].Tracks = tracks
		}
		artists[i].Releases = releases
	}
	return artists
}

//nolint:gochecknoglobals
var fallbackArtists = []Artist{
	{
		ID:       "yuno-sweez",
		Name:     "Yuno $weez",
		Password: "Benkifiya1",
		Releases: []Release{
			{
				ID:          "sweez-city",
				Title:       "$weezCity",
				Type:        TypeAlbum,
				ReleaseDate: "2025-12-25",
				CoverArt:    "https://is1-ssl.mzstatic.com/image/thumb/Music221/v4/88/94/98/8894986e-c4c6-f301-3f2e-bd0dbe21bf96/artwork.jpg/632x632bb.webp",
				Tracks: []Track{
					{ID: "1", Title: "fatimah", Duration: "1:24", Explicit: true},
					{ID: "2", Title: "DONOTRUNUPONME!", Duration: "1:43", Explicit: true},
					{ID: "3", Title: "Beamer (feat. Yuno Benz)", Duration: "1:51", Explicit: true},
					{ID: "4", Title: "Issey Miyake", Duration: "1:57", Explicit: true},
					{ID: "5", Title: "Oxycodone (feat. JBEETLE)", Duration: "2:49", Explicit: true},
					{ID: "6", Title: "SUNDAYMORNINGCHURCH (feat. Jadi)", Duration: "3:20", Explicit: true},
					{ID: "7", Title: "Let Me Interlude", Duration: "2:11", Explicit: true},
					{ID: "8", Title: "Law Fawk Order", Duration: "1:42", Explicit: true},
					{ID: "9", Title: "Purple Drank", Duration: "2:19", Explicit: true},
					{ID: "10", Title: "Givenchy", Duration: "1:51", Explicit: true},
				},
			},
			{
				ID:          "lost-files",
				Title:       "lost files from $weez",
				Type:        TypeAlbum,
				ReleaseDate: "2026-01-02",
				CoverArt:    "https://is1-ssl.mzstatic.com/image/thumb/Music211/v4/de/1d/ae/de1dae3c-113c-ed1a-8c08-02ebc1f779f3/artwork.jpg/632x632bb.webp",
				Tracks: []Track{
					{ID: "1", Title: "Lost Intro (feat. soløwøn)", Duration: "2:27", Explicit: true},
					{ID: "2", Title: "Mona Lisa", Duration: "2:16", Explicit: true},
					{ID: "3", Title: "Yuno $weez", Duration: "1:20", Explicit: true},
					{ID: "4", Title: "Bugatti Way (feat. YunoKaydee)", Duration: "1:55", Explicit: true},
					{ID: "5", Title: "Middleman", Duration: "1:50", Explicit: true},
					{ID: "6", Title: "Boondocks (feat. svspperkk)", Duration: "3:07", Explicit: true},
					{ID: "7", Title: "For Me (feat. svspperkk)", Duration: "2:07", Explicit: true},
					{ID: "8", Title: "Outer Banks", Duration: "2:08", Explicit: true},
					{ID: "9", Title: "Pain (feat. Kaminar1)", Duration: "2:25", Explicit: true},
					{ID: "10", Title: "$he Lit", Duration: "2:03", Explicit: true},
					{ID: "11", Title: "Lost Outro", Duration: "1:31", Explicit: true},
				},
			},
			{
				ID:          "xans-wrld",
				Title:       "Xan$wrld",
				Type:        TypeSingle,
				ReleaseDate: "2026-01-03",
				CoverArt:    "https://is1-ssl.mzstatic.com/image/thumb/Music211/v4/11/d7/27/11d7272c-67dc-1aa4-2525-2ff23f71fd33/artwork.jpg/632x632bb.webp",
				Tracks: []Track{
					{ID: "1", Title: "Xan$wrld", Duration: "2:10", Explicit: true},
				},
			},
			{
				ID:          "boondocks",
				Title:       "Boondocks",
				Type:        TypeSingle,
				ReleaseDate: "2026-01-03",
				CoverArt:    "https://is1-ssl.mzstatic.com/image/thumb/Music221/v4/a4/a5/15/a4a515a7-227c-6655-d26b-3e8c2e481cd4/artwork.jpg/632x632bb.webp",
				Tracks: []Track{
					{ID: "1", Title: "Boondocks (feat. svspperkk & $p@de)", Duration: "3:50", Explicit: true},
				},
			},
			{
				ID:          "perkys",
				Title:       "PERKY$",
				Type:        TypeSingle,
				ReleaseDate: "2026-01-19",
				CoverArt:    "https://is1-ssl.mzstatic.com/image/thumb/Music221/v4/68/73/53/68735313-0fa6-51d1-2912-9dcfb1d8d64b/artwork.jpg/632x632bb.webp",
				Tracks: []Track{
					{ID: "1", Title: "PERKY$", Duration: "1:54", Explicit: true},
				},
			},
			{
				ID:          "payme",
				Title:       "Pay Me!",
				Type:        TypeSingle,
				ReleaseDate: "2026-01-19",
				CoverArt:    "https://is1-ssl.mzstatic.com/image/thumb/Music221/v4/12/70/a3/1270a327-2ce4-7e17-dc42-402ce499eed1/artwork.jpg/632x632bb.webp",
				Tracks: []Track{
					{ID: "1", Title: "Pay Me! (feat. Yuno Benz)", Duration: "2:03", Explicit: true},
				},
			},
		},
	},
	{
		ID:       "jamar",
		Name:     "J@M@R",
		Password: "jamar123",
		Releases: []Release{
			{
				ID:          "freaking-music",
				Title:       "I AM THE FREAKING MUSIC",
				Type:        TypeSingle,
				ReleaseDate: "2025-10-30",
				CoverArt:    "https://is1-ssl.mzstatic.com/image/thumb/Music211/v4/bd/5b/9a/bd5b9aad-d071-d193-96f1-09a9ffdec549/artwork.jpg/632x632bb.webp",
				Tracks: []Track{
					{ID: "1", Title: "I AM THE FREAKING MUSIC", Duration: "2:46", Explicit: true},
				},
			},
		},
	},
}
