package ports

import (
	"dbstats/domain/study"
	"dbstats/domain/sucrose"
)

// FigureRendererPort renders the publication figures as raster images.
type FigureRendererPort interface {
	RenderTrajectories(path string, long []study.Observation) error
	RenderGroupedRaincloud(path string, means []study.PhaseMean) error
	RenderPDRaincloud(path string, means []study.PhaseMean) error
	RenderSucroseRaincloud(path string, paired *sucrose.Paired) error
}
