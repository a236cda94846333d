package gallery

import "github.com/moraleja/portfolio/internal/domain"

// ViewerState is a render snapshot of the lightbox.
type ViewerState struct {
	AssetID   int              `json:"assetId"`
	Index     int              `json:"index"`
	Total     int              `json:"total"`
	Counter   string           `json:"counter"`
	HasPrev   bool             `json:"hasPrev"`
	HasNext   bool             `json:"hasNext"`
	PrevID    *int             `json:"prevId,omitempty"`
	NextID    *int             `json:"nextId,omitempty"`
	Badge     domain.MediaType `json:"badge"`
	ShowInfo  bool             `json:"showInfo"`
	IsLoaded  bool             `json:"isLoaded"`
	IsExiting bool             `json:"isExiting"`
	Media     MediaView        `json:"media"`
	Info      *InfoPanel       `json:"info,omitempty"`
}

type MediaView struct {
	Kind    domain.MediaType `json:"kind"`
	URL     string           `json:"url"`
	Alt     string           `json:"alt,omitempty"`
	Opacity float64          `json:"opacity"`
	Spinner bool             `json:"spinner"`

	// Video transport flags.
	Controls bool `json:"controls,omitempty"`
	Autoplay bool `json:"autoplay,omitempty"`
	Loop     bool `json:"loop,omitempty"`
	Muted    bool `json:"muted,omitempty"`

	Placeholder *Placeholder `json:"placeholder,omitempty"`
}

// Placeholder is the blurred, scaled copy of the same image shown under the
// full-resolution one until it loads.
type Placeholder struct {
	URL     string  `json:"url"`
	BlurPx  int     `json:"blurPx"`
	Scale   float64 `json:"scale"`
	Opacity float64 `json:"opacity"`
}

type InfoPanel struct {
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	ProjectTitle string   `json:"projectTitle,omitempty"`
	ProjectLink  string   `json:"projectLink,omitempty"`
}

// Describe builds a viewer snapshot without mounting a viewer.
func Describe(assets []Asset, current Asset, loaded, showInfo bool) ViewerState {
	pos := Locate(assets, current.ID)
	st := ViewerState{
		AssetID:  current.ID,
		Index:    pos.Index,
		Total:    pos.Total,
		Counter:  pos.Counter(),
		HasPrev:  pos.HasPrev(),
		HasNext:  pos.HasNext(),
		Badge:    current.Type,
		ShowInfo: showInfo,
		IsLoaded: loaded,
	}
	if pos.Prev != nil {
		id := pos.Prev.ID
		st.PrevID = &id
	}
	if pos.Next != nil {
		id := pos.Next.ID
		st.NextID = &id
	}

	opacity := 0.0
	if loaded {
		opacity = 1
	}
	st.Media = MediaView{Kind: current.Type, URL: current.URL, Opacity: opacity, Spinner: !loaded}
	if current.Type == domain.MediaVideo {
		st.Media.Controls = true
		st.Media.Autoplay = true
		st.Media.Loop = true
		st.Media.Muted = true
	} else {
		st.Media.Alt = AltText(current)
		ph := &Placeholder{URL: current.URL, BlurPx: 20, Scale: 1.05, Opacity: 0.5}
		if loaded {
			ph.Opacity = 0
		}
		st.Media.Placeholder = ph
	}

	if showInfo {
		info := &InfoPanel{
			Title:       deref(current.Title),
			Description: deref(current.Description),
			Tags:        current.Tags,
		}
		if link, ok := ProjectLink(current); ok {
			info.ProjectTitle = *current.ProjectTitle
			info.ProjectLink = link
		}
		st.Info = info
	}
	return st
}
