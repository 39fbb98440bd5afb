package balcao

// Collection names of the inventory backend. A [Resource] addresses any
// collection by name; these constants only exist so screens and the CLI
// agree on spelling.
const (
	CollectionGrupos        = "grupos"
	CollectionSubgrupos     = "subgrupos"
	CollectionSubSubgrupos  = "sub_subgrupos"
	CollectionProdutos      = "produtos"
	CollectionClientes      = "clientes"
	CollectionFornecedores  = "fornecedores"
	CollectionCompras       = "compras"
	CollectionComprasItens  = "compras_itens"
	CollectionVendas        = "vendas"
	CollectionVendasItens   = "vendas_itens"
	CollectionMovimentacoes = "movimentacoes_estoque"
	CollectionConfiguracoes = "configuracoes"
)

// userOwnedCollections get the current actor stamped into usuario_id on
// create when the caller did not set it.
var userOwnedCollections = map[string]bool{
	CollectionCompras:       true,
	CollectionVendas:        true,
	CollectionMovimentacoes: true,
	CollectionConfiguracoes: true,
}
