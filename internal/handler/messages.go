package handler

// Client-facing texts per resource.
var (
    SpeciesMessages = Messages{
        ListFailed:   "Error al obtener especies",
        CreateFailed: "Error al crear especie",
        UpdateFailed: "Error al actualizar especie con ID %s",
        Deleted:      "Especie eliminada correctamente",
        DeleteFailed: "Error al eliminar especie con ID %s",
    }
    UserMessages = Messages{
        ListFailed:   "Error al obtener usuarios",
        CreateFailed: "Error al crear usuario",
        UpdateFailed: "Error al actualizar usuario con ID %s",
        Deleted:      "Usuario eliminado correctamente",
        DeleteFailed: "Error al eliminar usuario con ID %s",
    }
    SightingMessages = Messages{
        ListFailed:   "Error al obtener avistamientos",
        CreateFailed: "Error al crear avistamiento",
        UpdateFailed: "Error al actualizar avistamiento con ID %s",
        Deleted:      "Avistamiento eliminado correctamente",
        DeleteFailed: "Error al eliminar avistamiento con ID %s",
    }
)
