package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/feature_radar/app/display/internal/data"
	"github.com/iWorld-y/feature_radar/app/display/internal/service"
	"github.com/iWorld-y/feature_radar/app/display/internal/usecase"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/engine"
)

// ProviderSet 是展示服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewAnalyzerEngine,

	// Data providers
	data.NewData,
	data.NewSessionRepo,

	// UseCase providers
	usecase.NewAnalysisUseCase,
	wire.Bind(new(usecase.Analyzer), new(*engine.Engine)),

	// Service providers
	service.NewDisplayService,
	wire.Bind(new(service.AnalysisUseCase), new(*usecase.AnalysisUseCase)),
)
